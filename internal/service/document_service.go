package service

import (
	"context"
	"fmt"
	"strings"

	"gradaid-be/internal/apperror"
	"gradaid-be/internal/config"
	"gradaid-be/internal/dto"
	"gradaid-be/internal/entity"
	"gradaid-be/internal/pkg/clock"
	"gradaid-be/internal/pkg/logger"
	"gradaid-be/internal/pkg/mailer"
	"gradaid-be/internal/repository/specification"
	"gradaid-be/internal/repository/unitofwork"
	"gradaid-be/pkg/llm"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	List(ctx context.Context, userId uuid.UUID, applicationId uuid.UUID) ([]*dto.DocumentResponse, error)
	Get(ctx context.Context, userId, id uuid.UUID) (*dto.DocumentResponse, error)
	Update(ctx context.Context, userId, id uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error
	// Generate produces an AI draft. Credits are debited before the model is
	// called; a ledger rejection aborts the whole operation.
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateDocumentRequest) (*dto.GenerateDocumentResponse, error)
	// Refine reworks an existing draft with the model, at the refinement rate.
	Refine(ctx context.Context, userId, id uuid.UUID, req *dto.RefineDocumentRequest) (*dto.GenerateDocumentResponse, error)
}

// lowCreditThreshold is the remaining balance at which the user gets a
// heads-up email after a generation run.
const lowCreditThreshold = 15

type documentService struct {
	uowFactory    unitofwork.RepositoryFactory
	creditService ICreditService
	provider      llm.LLMProvider
	mail          mailer.IEmailService
	cfg           *config.Config
	clk           clock.Clock
	log           logger.ILogger
	feed          IFeedPublisher
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	creditService ICreditService,
	provider llm.LLMProvider,
	mail mailer.IEmailService,
	cfg *config.Config,
	clk clock.Clock,
	log logger.ILogger,
	feed IFeedPublisher,
) IDocumentService {
	return &documentService{
		uowFactory:    uowFactory,
		creditService: creditService,
		provider:      provider,
		mail:          mail,
		cfg:           cfg,
		clk:           clk,
		log:           log,
		feed:          feed,
	}
}

func (s *documentService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	docType := entity.DocumentType(req.Type)
	if !docType.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown document type %q", req.Type))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	application, err := uow.ApplicationRepository().FindOne(ctx,
		specification.ByID{ID: req.ApplicationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, apperror.NotFound("application not found")
	}

	document := &entity.Document{
		UserId:        userId,
		ApplicationId: req.ApplicationId,
		Type:          docType,
		Title:         req.Title,
		Content:       req.Content,
		Status:        entity.DocumentStatusDraft,
		Version:       1,
	}
	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}
	return toDocumentResponse(document), nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID, applicationId uuid.UUID) ([]*dto.DocumentResponse, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if applicationId != uuid.Nil {
		specs = append(specs, specification.Filter("application_id", applicationId))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DocumentResponse, len(documents))
	for i, d := range documents {
		res[i] = toDocumentResponse(d)
	}
	return res, nil
}

func (s *documentService) Get(ctx context.Context, userId, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(document), nil
}

func (s *documentService) Update(ctx context.Context, userId, id uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	document, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	if document.Status == entity.DocumentStatusFinal {
		return nil, apperror.Conflict("finalized documents cannot be edited")
	}

	document.Title = req.Title
	document.Content = req.Content
	document.Version++
	if req.Status != "" {
		document.Status = entity.DocumentStatus(req.Status)
	}
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	entry := &entity.ActivityEntry{
		UserId:      userId,
		Type:        entity.ActivityTypeDocumentEdit,
		Description: fmt.Sprintf("Document %q updated", document.Title),
		Metadata: map[string]interface{}{
			"document_id": document.Id.String(),
			"version":     document.Version,
			"status":      string(document.Status),
		},
		Timestamp: s.clk.Now(),
	}
	if err := uow.ActivityRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.PublishActivity(entry)
	}
	return toDocumentResponse(document), nil
}

func (s *documentService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findOwned(ctx, uow, userId, id); err != nil {
		return err
	}
	return uow.DocumentRepository().Delete(ctx, id)
}

func (s *documentService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateDocumentRequest) (*dto.GenerateDocumentResponse, error) {
	docType := entity.DocumentType(req.Type)
	if !docType.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown document type %q", req.Type))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	application, err := uow.ApplicationRepository().FindOne(ctx,
		specification.ByID{ID: req.ApplicationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, apperror.NotFound("application not found")
	}

	program, err := uow.ProgramRepository().FindOne(ctx, specification.ByID{ID: application.ProgramId})
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, apperror.NotFound("program not found")
	}
	university, err := uow.UniversityRepository().FindOne(ctx, specification.ByID{ID: program.UniversityId})
	if err != nil {
		return nil, err
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	cost, category := s.pricing(docType)

	// Debit first. The ledger guards the spend; the model is only called for
	// users who could pay.
	debit, err := s.creditService.Debit(ctx, userId, &dto.DebitRequest{
		CreditsUsed: cost,
		Description: fmt.Sprintf("AI %s draft for %s", strings.ToUpper(req.Type), program.Name),
		Type:        string(category),
	})
	if err != nil {
		return nil, err
	}

	prompt := buildDocumentPrompt(docType, user.FullName, program, university, req.Instructions)
	content, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.7), llm.WithMaxTokens(2048))
	if err != nil {
		// Credits already left the account. Record the failure loudly rather
		// than attempting a compensating credit here.
		s.log.Error("DOCUMENTS", "LLM generation failed after debit", map[string]interface{}{
			"user_id":        userId,
			"application_id": req.ApplicationId,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("generate %s draft: %w", req.Type, err)
	}

	document := &entity.Document{
		UserId:        userId,
		ApplicationId: req.ApplicationId,
		Type:          docType,
		Title:         fmt.Sprintf("%s draft for %s", strings.ToUpper(req.Type), program.Name),
		Content:       content,
		Status:        entity.DocumentStatusDraft,
		Version:       1,
		AiGenerated:   true,
	}
	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}

	if s.mail != nil && debit.RemainingCredits < lowCreditThreshold {
		go func(email string, remaining int) {
			if err := s.mail.SendLowCreditNotice(email, remaining); err != nil {
				s.log.Warn("DOCUMENTS", "Failed to send low credit notice", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}(user.Email, debit.RemainingCredits)
	}

	return &dto.GenerateDocumentResponse{
		Document:         *toDocumentResponse(document),
		CreditsUsed:      cost,
		RemainingCredits: debit.RemainingCredits,
	}, nil
}

func (s *documentService) Refine(ctx context.Context, userId, id uuid.UUID, req *dto.RefineDocumentRequest) (*dto.GenerateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	if document.Status == entity.DocumentStatusFinal {
		return nil, apperror.Conflict("finalized documents cannot be refined")
	}
	if document.Content == "" {
		return nil, apperror.Validation("document has no content to refine")
	}

	debit, err := s.creditService.Debit(ctx, userId, &dto.DebitRequest{
		CreditsUsed: s.cfg.Credits.RefineCost,
		Description: fmt.Sprintf("AI refinement of %q", document.Title),
		Type:        string(entity.UsageCategoryRefinement),
	})
	if err != nil {
		return nil, err
	}

	prompt := buildRefinePrompt(document, req.Instructions)
	content, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.5), llm.WithMaxTokens(2048))
	if err != nil {
		s.log.Error("DOCUMENTS", "LLM refinement failed after debit", map[string]interface{}{
			"user_id":     userId,
			"document_id": id,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("refine document: %w", err)
	}

	document.Content = content
	document.Version++
	document.AiGenerated = true
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	return &dto.GenerateDocumentResponse{
		Document:         *toDocumentResponse(document),
		CreditsUsed:      s.cfg.Credits.RefineCost,
		RemainingCredits: debit.RemainingCredits,
	}, nil
}

func (s *documentService) pricing(docType entity.DocumentType) (int, entity.UsageCategory) {
	if docType == entity.DocumentTypeLor {
		return s.cfg.Credits.LorCost, entity.UsageCategoryLorGeneration
	}
	return s.cfg.Credits.SopCost, entity.UsageCategorySopGeneration
}

func (s *documentService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Document, error) {
	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperror.NotFound("document not found")
	}
	return document, nil
}

func buildDocumentPrompt(docType entity.DocumentType, applicantName string, program *entity.Program, university *entity.University, instructions string) string {
	var b strings.Builder
	if docType == entity.DocumentTypeLor {
		b.WriteString("Write a letter of recommendation for a graduate school applicant.\n")
	} else {
		b.WriteString("Write a statement of purpose for a graduate school application.\n")
	}
	fmt.Fprintf(&b, "Applicant: %s\n", applicantName)
	fmt.Fprintf(&b, "Program: %s (%s)", program.Name, program.Degree)
	if program.Department != "" {
		fmt.Fprintf(&b, ", %s", program.Department)
	}
	b.WriteString("\n")
	if university != nil {
		fmt.Fprintf(&b, "University: %s, %s\n", university.Name, university.Country)
	}
	if instructions != "" {
		fmt.Fprintf(&b, "Additional instructions: %s\n", instructions)
	}
	b.WriteString("Keep it specific, professional, and around 600 words.")
	return b.String()
}

func buildRefinePrompt(document *entity.Document, instructions string) string {
	var b strings.Builder
	if document.Type == entity.DocumentTypeLor {
		b.WriteString("Revise the following letter of recommendation.\n")
	} else {
		b.WriteString("Revise the following statement of purpose.\n")
	}
	fmt.Fprintf(&b, "Instructions: %s\n\n", instructions)
	b.WriteString("Current draft:\n")
	b.WriteString(document.Content)
	return b.String()
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:            d.Id,
		ApplicationId: d.ApplicationId,
		Type:          string(d.Type),
		Title:         d.Title,
		Content:       d.Content,
		Status:        string(d.Status),
		Version:       d.Version,
		AiGenerated:   d.AiGenerated,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

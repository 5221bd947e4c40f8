package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cadet-trb/internal/models"
	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

type taskRepoStub struct {
	templates map[string]models.TrainingTaskTemplate
	progress  map[string]*models.TrainingTaskProgress
	evidence  []models.TaskEvidence
	updates   int
}

func newTaskRepoStub(templates ...models.TrainingTaskTemplate) *taskRepoStub {
	stub := &taskRepoStub{
		templates: map[string]models.TrainingTaskTemplate{},
		progress:  map[string]*models.TrainingTaskProgress{},
	}
	for _, template := range templates {
		stub.templates[template.ID] = template
	}
	return stub
}

func (s *taskRepoStub) key(cadetID, templateID string) string {
	return cadetID + "/" + templateID
}

func (s *taskRepoStub) ListTemplates(ctx context.Context, stream models.CadetStream) ([]models.TrainingTaskTemplate, error) {
	result := []models.TrainingTaskTemplate{}
	for _, template := range s.templates {
		if template.Stream == stream {
			result = append(result, template)
		}
	}
	return result, nil
}

func (s *taskRepoStub) FindTemplate(ctx context.Context, id string) (*models.TrainingTaskTemplate, error) {
	if template, ok := s.templates[id]; ok {
		return &template, nil
	}
	return nil, nil
}

func (s *taskRepoStub) FindProgress(ctx context.Context, cadetID, templateID string) (models.ProgressLookup, error) {
	if progress, ok := s.progress[s.key(cadetID, templateID)]; ok {
		clone := *progress
		return models.ProgressLookup{Found: true, Progress: &clone}, nil
	}
	return models.ProgressLookup{}, nil
}

func (s *taskRepoStub) ListProgressForCadet(ctx context.Context, cadetID string) ([]models.TrainingTaskProgress, error) {
	result := []models.TrainingTaskProgress{}
	for _, progress := range s.progress {
		if progress.CadetID == cadetID {
			result = append(result, *progress)
		}
	}
	return result, nil
}

func (s *taskRepoStub) InsertProgress(ctx context.Context, progress *models.TrainingTaskProgress) error {
	if progress.ID == "" {
		progress.ID = "progress-" + progress.TemplateID
	}
	clone := *progress
	s.progress[s.key(progress.CadetID, progress.TemplateID)] = &clone
	return nil
}

func (s *taskRepoStub) UpdateProgress(ctx context.Context, progress *models.TrainingTaskProgress) error {
	s.updates++
	clone := *progress
	s.progress[s.key(progress.CadetID, progress.TemplateID)] = &clone
	return nil
}

func (s *taskRepoStub) InsertEvidence(ctx context.Context, evidence *models.TaskEvidence) error {
	if evidence.ID == "" {
		evidence.ID = "evidence-1"
	}
	s.evidence = append(s.evidence, *evidence)
	return nil
}

func (s *taskRepoStub) ListEvidenceForProgress(ctx context.Context, taskProgressID string) ([]models.TaskEvidence, error) {
	result := []models.TaskEvidence{}
	for _, evidence := range s.evidence {
		if evidence.TaskProgressID == taskProgressID {
			result = append(result, evidence)
		}
	}
	return result, nil
}

var deckSession = models.Session{CadetID: "cadet-001", Stream: models.StreamDeck}

func deckTemplate() models.TrainingTaskTemplate {
	return models.TrainingTaskTemplate{
		ID:          "deck-nav-001",
		SectionCode: "NAV",
		Title:       "Passage plan appraisal",
		Stream:      models.StreamDeck,
		IsMandatory: true,
	}
}

func TestTaskServiceToggleCreatesRowLazily(t *testing.T) {
	stub := newTaskRepoStub(deckTemplate())
	svc := NewTaskService(stub, nil, nil)

	progress, err := svc.ToggleSubmission(context.Background(), deckSession, "deck-nav-001")
	require.NoError(t, err)
	assert.Equal(t, models.TaskSubmitted, progress.Status)
	require.NotNil(t, progress.LastStatusChangeAt)

	// Toggling again returns the task to PENDING.
	progress, err = svc.ToggleSubmission(context.Background(), deckSession, "deck-nav-001")
	require.NoError(t, err)
	assert.Equal(t, models.TaskPending, progress.Status)
}

func TestTaskServiceToggleRejectedWhenVerified(t *testing.T) {
	stub := newTaskRepoStub(deckTemplate())
	stub.progress[stub.key("cadet-001", "deck-nav-001")] = &models.TrainingTaskProgress{
		ID:         "p1",
		CadetID:    "cadet-001",
		TemplateID: "deck-nav-001",
		Status:     models.TaskVerified,
	}
	svc := NewTaskService(stub, nil, nil)

	_, err := svc.ToggleSubmission(context.Background(), deckSession, "deck-nav-001")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindState))

	// The stored row is untouched.
	assert.Equal(t, 0, stub.updates)
	assert.Equal(t, models.TaskVerified, stub.progress[stub.key("cadet-001", "deck-nav-001")].Status)
}

func TestTaskServiceReflectionCreatesPendingRow(t *testing.T) {
	stub := newTaskRepoStub(deckTemplate())
	svc := NewTaskService(stub, nil, nil)

	progress, err := svc.SaveReflection(context.Background(), deckSession, "deck-nav-001", "Learned the appraisal stages.")
	require.NoError(t, err)
	assert.Equal(t, models.TaskPending, progress.Status)
	require.NotNil(t, progress.ReflectionText)
	assert.Equal(t, "Learned the appraisal stages.", *progress.ReflectionText)
}

func TestTaskServiceReflectionRejectedWhenApproved(t *testing.T) {
	stub := newTaskRepoStub(deckTemplate())
	stub.progress[stub.key("cadet-001", "deck-nav-001")] = &models.TrainingTaskProgress{
		ID:         "p1",
		CadetID:    "cadet-001",
		TemplateID: "deck-nav-001",
		Status:     models.TaskApproved,
	}
	svc := NewTaskService(stub, nil, nil)

	_, err := svc.SaveReflection(context.Background(), deckSession, "deck-nav-001", "too late")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindState))
}

func TestTaskServiceUnknownTemplate(t *testing.T) {
	stub := newTaskRepoStub()
	svc := NewTaskService(stub, nil, nil)

	_, err := svc.ToggleSubmission(context.Background(), deckSession, "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestTaskServiceListTasksDefaultsToPending(t *testing.T) {
	stub := newTaskRepoStub(deckTemplate())
	svc := NewTaskService(stub, nil, nil)

	tasks, err := svc.ListTasks(context.Background(), deckSession)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskPending, tasks[0].Status)
	assert.Nil(t, tasks[0].Progress)
}

func TestTaskServiceAttachEvidence(t *testing.T) {
	stub := newTaskRepoStub(deckTemplate())
	svc := NewTaskService(stub, nil, nil)

	mime := "image/jpeg"
	evidence, err := svc.AttachEvidence(context.Background(), deckSession, "deck-nav-001", AttachEvidenceRequest{
		LocalURI: "file:///photo.jpg",
		MimeType: &mime,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, evidence.TaskProgressID)

	listed, err := svc.ListEvidence(context.Background(), deckSession, "deck-nav-001")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

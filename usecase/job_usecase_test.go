package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lector/config"
	"lector/domain"
	"lector/mocks"
)

func TestJobUsecase_PublishCreatesRecordThenEnqueues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := mocks.NewMockJobQueue(ctrl)
	status := mocks.NewMockJobStatusStore(ctrl)
	uc := NewJobUsecase(queue, status, config.JobConfig{}, testLogger())

	payload := map[string]string{"user_id": uuid.NewString()}

	var recorded *domain.JobRecord
	status.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record *domain.JobRecord) error {
			recorded = record
			return nil
		})
	queue.EXPECT().Enqueue(gomock.Any(), gomock.Any(), domain.JobOpmlExport, payload, 0).Return(nil)

	record, err := uc.Publish(context.Background(), domain.JobOpmlExport, payload)
	require.NoError(t, err)
	assert.Equal(t, domain.JobPending, record.Status)
	assert.Equal(t, recorded.ID, record.ID)
}

func TestJobUsecase_PublishRejectsUnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := NewJobUsecase(mocks.NewMockJobQueue(ctrl), mocks.NewMockJobStatusStore(ctrl), config.JobConfig{}, testLogger())

	_, err := uc.Publish(context.Background(), "mystery_job", nil)
	assert.Error(t, err)
}

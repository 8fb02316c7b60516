package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"platform-adapter-service/internal/domain"
	"platform-adapter-service/internal/platform"
	"platform-adapter-service/internal/store"
)

type MockCategoryMappingStorer struct {
	mock.Mock
}

func (m *MockCategoryMappingStorer) GetCategoryMapping(ctx context.Context, userID, sourceCategory, platform string) (*domain.CategoryMapping, error) {
	args := m.Called(ctx, userID, sourceCategory, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryMapping), args.Error(1)
}

func (m *MockCategoryMappingStorer) SaveCategoryMapping(ctx context.Context, mapping *domain.CategoryMapping) (*domain.CategoryMapping, error) {
	args := m.Called(ctx, mapping)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryMapping), args.Error(1)
}

type recordedOutcome struct {
	platform, outcome string
}

type fakeRecorder struct {
	got []recordedOutcome
}

func (r *fakeRecorder) ObserveCategoryResolution(platform, outcome string) {
	r.got = append(r.got, recordedOutcome{platform, outcome})
}

func userCtx() context.Context {
	return domain.ContextWithUserID(context.Background(), "user-1")
}

func TestMapCategory_VerifiedMappingIsCached(t *testing.T) {
	mockStore := new(MockCategoryMappingStorer)
	rec := &fakeRecorder{}
	m := NewMapper(platform.Default(), WithStore(mockStore), WithRecorder(rec))

	mockStore.On("GetCategoryMapping", mock.Anything, "user-1", "Gadgets", "amazon").
		Return(&domain.CategoryMapping{TargetCategory: "Electronics", ConfidenceScore: 0.6, IsVerified: true}, nil).Once()

	res := m.MapCategory(userCtx(), "Gadgets", "Amazon")

	assert.Equal(t, Resolution{Match: Match{Category: "Electronics", Confidence: 1.0}, Cached: true}, res)
	assert.Equal(t, []recordedOutcome{{"amazon", OutcomeCached}}, rec.got)
	mockStore.AssertExpectations(t)
	mockStore.AssertNotCalled(t, "SaveCategoryMapping", mock.Anything, mock.Anything)
}

func TestMapCategory_UnverifiedMappingIsRecomputed(t *testing.T) {
	mockStore := new(MockCategoryMappingStorer)
	m := NewMapper(platform.Default(), WithStore(mockStore))

	mockStore.On("GetCategoryMapping", mock.Anything, "user-1", "Electronics", "amazon").
		Return(&domain.CategoryMapping{TargetCategory: "Toys & Games", IsVerified: false}, nil).Once()
	mockStore.On("SaveCategoryMapping", mock.Anything, mock.Anything).
		Return(&domain.CategoryMapping{}, nil).Once()

	res := m.MapCategory(userCtx(), "Electronics", "amazon")

	assert.Equal(t, "Electronics", res.Category)
	assert.False(t, res.Cached)
	mockStore.AssertExpectations(t)
}

func TestMapCategory_SavesConfidentMatchUnverified(t *testing.T) {
	mockStore := new(MockCategoryMappingStorer)
	rec := &fakeRecorder{}
	m := NewMapper(platform.Default(), WithStore(mockStore), WithRecorder(rec))

	mockStore.On("GetCategoryMapping", mock.Anything, "user-1", "electronics", "amazon").
		Return(nil, store.ErrCategoryMappingNotFound).Once()
	mockStore.On("SaveCategoryMapping", mock.Anything, mock.MatchedBy(func(cm *domain.CategoryMapping) bool {
		return cm.UserID == "user-1" &&
			cm.SourceCategory == "electronics" &&
			cm.Platform == "amazon" &&
			cm.TargetCategory == "Electronics" &&
			cm.ConfidenceScore == 1.0 &&
			!cm.IsVerified
	})).Return(&domain.CategoryMapping{}, nil).Once()

	res := m.MapCategory(userCtx(), "electronics", "amazon")

	assert.Equal(t, Resolution{Match: Match{Category: "Electronics", Confidence: 1.0}}, res)
	assert.Equal(t, []recordedOutcome{{"amazon", OutcomeComputed}}, rec.got)
	mockStore.AssertExpectations(t)
}

func TestMapCategory_LowConfidenceIsNotSaved(t *testing.T) {
	mockStore := new(MockCategoryMappingStorer)
	m := NewMapper(platform.Default(), WithStore(mockStore))

	mockStore.On("GetCategoryMapping", mock.Anything, "user-1", "qxvz", "amazon").
		Return(nil, store.ErrCategoryMappingNotFound).Once()

	res := m.MapCategory(userCtx(), "qxvz", "amazon")

	assert.InDelta(t, 0.3, res.Confidence, 1e-9)
	assert.False(t, res.Cached)
	mockStore.AssertExpectations(t)
	mockStore.AssertNotCalled(t, "SaveCategoryMapping", mock.Anything, mock.Anything)
}

func TestMapCategory_StoreFailuresFallBack(t *testing.T) {
	mockStore := new(MockCategoryMappingStorer)
	rec := &fakeRecorder{}
	m := NewMapper(platform.Default(), WithStore(mockStore), WithRecorder(rec))

	mockStore.On("GetCategoryMapping", mock.Anything, "user-1", "Electronics", "amazon").
		Return(nil, errors.New("connection refused")).Once()
	mockStore.On("SaveCategoryMapping", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	res := m.MapCategory(userCtx(), "Electronics", "amazon")

	assert.Equal(t, Resolution{Match: Match{Category: "Electronics", Confidence: 1.0}}, res)
	assert.Equal(t, []recordedOutcome{{"amazon", OutcomeFallback}}, rec.got)
	mockStore.AssertExpectations(t)
}

func TestMapCategory_LookupTimeoutFallsBack(t *testing.T) {
	mockStore := new(MockCategoryMappingStorer)
	m := NewMapper(platform.Default(), WithStore(mockStore), WithTimeout(10*time.Millisecond))

	mockStore.On("GetCategoryMapping", mock.Anything, "user-1", "Electronics", "amazon").
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded).Once()
	mockStore.On("SaveCategoryMapping", mock.Anything, mock.Anything).
		Return(&domain.CategoryMapping{}, nil).Once()

	start := time.Now()
	res := m.MapCategory(userCtx(), "Electronics", "amazon")

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, "Electronics", res.Category)
	assert.False(t, res.Cached)
	mockStore.AssertExpectations(t)
}

func TestMapCategory_WithoutStore(t *testing.T) {
	m := NewMapper(platform.Default())
	res := m.MapCategory(context.Background(), "Electronics", "amazon")
	assert.Equal(t, Resolution{Match: Match{Category: "Electronics", Confidence: 1.0}}, res)
}

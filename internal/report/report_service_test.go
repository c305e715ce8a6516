package report_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fairprice/backend/internal/models"
	"fairprice/backend/internal/report"
	"fairprice/backend/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) LoadReports(ctx context.Context) (storage.ReportTable, error) {
	args := m.Called(ctx)
	return args.Get(0).(storage.ReportTable), args.Error(1)
}

func (m *MockStorage) AppendReport(ctx context.Context, r models.Report) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishReport(ctx context.Context, r models.Report) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var fixedNow = time.Date(2024, 5, 1, 3, 30, 45, 0, time.UTC)

func newService(s storage.Storage, n report.Notifier) *report.Service {
	kst := time.FixedZone("KST", 9*60*60)
	svc := report.NewService(s, n, quietLogger(), kst)
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func TestSubmit_AppendsAndNotifies(t *testing.T) {
	// Arrange
	storageMock := new(MockStorage)
	notifierMock := new(MockNotifier)
	storageMock.On("AppendReport", mock.Anything, mock.AnythingOfType("models.Report")).Return(nil)
	notifierMock.On("PublishReport", mock.Anything, mock.AnythingOfType("models.Report")).Return(nil)
	svc := newService(storageMock, notifierMock)

	// Act
	rep, err := svc.Submit(context.Background(), "가나다분식", "시민1", "자랑거리", "  떡볶이 최고  ")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "가나다분식", rep.BusinessName)
	assert.Equal(t, "  떡볶이 최고  ", rep.Body, "body is stored as given")
	assert.Equal(t, "2024-05-01 12:30", rep.Timestamp, "timestamp uses the service time zone")
	storageMock.AssertCalled(t, "AppendReport", mock.Anything, rep)
	notifierMock.AssertCalled(t, "PublishReport", mock.Anything, rep)
}

func TestSubmit_RejectsBlankBody(t *testing.T) {
	for _, body := range []string{"", "   ", "\n\t "} {
		storageMock := new(MockStorage)
		svc := newService(storageMock, nil)

		_, err := svc.Submit(context.Background(), "가게", "시민1", "기타", body)

		assert.ErrorIs(t, err, report.ErrEmptyBody)
		storageMock.AssertNotCalled(t, "AppendReport", mock.Anything, mock.Anything)
	}
}

func TestSubmit_RejectsOverlongBody(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("AppendReport", mock.Anything, mock.Anything).Return(nil)
	svc := newService(storageMock, nil)

	_, err := svc.Submit(context.Background(), "가게", "시민1", "기타", strings.Repeat("가", 2001))
	assert.ErrorIs(t, err, report.ErrBodyTooLong)
	storageMock.AssertNotCalled(t, "AppendReport", mock.Anything, mock.Anything)

	// The limit counts characters, not bytes.
	_, err = svc.Submit(context.Background(), "가게", "시민1", "기타", strings.Repeat("가", 2000))
	assert.NoError(t, err)
}

func TestSubmit_PublishesAfterCallerCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageMock := new(MockStorage)
	notifierMock := new(MockNotifier)
	storageMock.On("AppendReport", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil)
	notifierMock.On("PublishReport",
		mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }),
		mock.Anything,
	).Return(nil)
	svc := newService(storageMock, notifierMock)

	_, err := svc.Submit(ctx, "가게", "시민1", "기타", "내용")

	require.NoError(t, err)
	require.Error(t, ctx.Err())
	notifierMock.AssertExpectations(t)
}

func TestSubmit_AcceptsUnknownBusinessAndKind(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("AppendReport", mock.Anything, mock.Anything).Return(nil)
	svc := newService(storageMock, nil)

	rep, err := svc.Submit(context.Background(), "없는 가게", "", "알 수 없음", "내용")

	require.NoError(t, err)
	assert.Equal(t, "없는 가게", rep.BusinessName)
	assert.Equal(t, "", rep.Nickname)
	assert.False(t, report.KnownKind(rep.Kind))
}

func TestSubmit_StorageErrorIsReturned(t *testing.T) {
	storageMock := new(MockStorage)
	notifierMock := new(MockNotifier)
	boom := errors.New("disk full")
	storageMock.On("AppendReport", mock.Anything, mock.Anything).Return(boom)
	svc := newService(storageMock, notifierMock)

	_, err := svc.Submit(context.Background(), "가게", "시민1", "기타", "내용")

	assert.ErrorIs(t, err, boom)
	notifierMock.AssertNotCalled(t, "PublishReport", mock.Anything, mock.Anything)
}

func TestSubmit_NotifierErrorIsNotFatal(t *testing.T) {
	storageMock := new(MockStorage)
	notifierMock := new(MockNotifier)
	storageMock.On("AppendReport", mock.Anything, mock.Anything).Return(nil)
	notifierMock.On("PublishReport", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	svc := newService(storageMock, notifierMock)

	_, err := svc.Submit(context.Background(), "가게", "시민1", "기타", "내용")

	assert.NoError(t, err)
}

// TestSubmit_WithFileStorage runs the whole append/read cycle against a real log file.
func TestSubmit_WithFileStorage(t *testing.T) {
	ctx := context.Background()
	fileStorage := storage.NewStorageService(filepath.Join(t.TempDir(), "user_reviews.csv"), nil, time.UTC)
	svc := newService(fileStorage, nil)

	_, err := svc.Submit(ctx, "가게", "시민1", "메뉴 추천", "김치찌개")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "가게", "시민2", "기타", "   ")
	require.ErrorIs(t, err, report.ErrEmptyBody)

	table, err := fileStorage.LoadReports(ctx)
	require.NoError(t, err)
	require.Len(t, table.Reports, 1, "rejected submission must not add a row")

	last := table.Reports[0]
	assert.Equal(t, "가게", last.BusinessName)
	assert.Equal(t, "시민1", last.Nickname)
	assert.Equal(t, "메뉴 추천", last.Kind)
	assert.Equal(t, "김치찌개", last.Body)
	_, err = time.Parse("2006-01-02 15:04", last.Timestamp)
	assert.NoError(t, err)
}

func TestThread_NewestFirst(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("LoadReports", mock.Anything).Return(storage.ReportTable{Reports: []models.Report{
		{BusinessName: "가게", Body: "첫번째"},
		{BusinessName: "다른가게", Body: "무관"},
		{BusinessName: "가게", Body: "두번째"},
	}}, nil)
	svc := newService(storageMock, nil)

	thread, err := svc.Thread(context.Background(), "가게")

	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "두번째", thread[0].Body)
	assert.Equal(t, "첫번째", thread[1].Body)
}

func TestForBusiness_NoMatches(t *testing.T) {
	got := report.ForBusiness(nil, "가게")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

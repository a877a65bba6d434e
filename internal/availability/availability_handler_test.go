package availability_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skylift/workforce/internal/availability"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeMatrixService struct {
	buildMatrixFn func(ctx context.Context, q availability.MatrixQuery) (availability.MatrixResponse, error)
	calls         int
}

func (f *fakeMatrixService) BuildMatrix(ctx context.Context, q availability.MatrixQuery) (availability.MatrixResponse, error) {
	f.calls++
	return f.buildMatrixFn(ctx, q)
}

func performMatrixRequest(h *availability.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	h.GetMatrix(c)
	return w
}

func TestAvailabilityHandler_GetMatrix(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sampleMatrix := availability.MatrixResponse{
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-06",
		Workers:     []availability.WorkerRow{},
		LastUpdated: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
	sampleMatrix.Summary.TotalWorkers = 0
	sampleMatrix.Summary.StatusCounts = map[string]int{}

	cacheKey := "availability:matrix:2026-03-02:2026-03-06::"

	t.Run("cache miss builds and stores", func(t *testing.T) {
		redisClient, redisMock := redismock.NewClientMock()
		svc := &fakeMatrixService{
			buildMatrixFn: func(ctx context.Context, q availability.MatrixQuery) (availability.MatrixResponse, error) {
				assert.Equal(t, "2026-03-02", q.StartDate.Format("2006-01-02"))
				assert.Equal(t, "2026-03-06", q.EndDate.Format("2006-01-02"))
				return sampleMatrix, nil
			},
		}
		h := availability.NewHandler(svc, redisClient)

		raw, _ := json.Marshal(sampleMatrix)
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSet(cacheKey, raw, 60*time.Second).SetVal("OK")

		w := performMatrixRequest(h, "/availability/matrix?start_date=2026-03-02&end_date=2026-03-06")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, svc.calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit skips rebuild", func(t *testing.T) {
		redisClient, redisMock := redismock.NewClientMock()
		svc := &fakeMatrixService{
			buildMatrixFn: func(ctx context.Context, q availability.MatrixQuery) (availability.MatrixResponse, error) {
				t.Fatal("service must not be called on a cache hit")
				return availability.MatrixResponse{}, nil
			},
		}
		h := availability.NewHandler(svc, redisClient)

		raw, _ := json.Marshal(sampleMatrix)
		redisMock.ExpectGet(cacheKey).SetVal(string(raw))

		w := performMatrixRequest(h, "/availability/matrix?start_date=2026-03-02&end_date=2026-03-06")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, svc.calls)
		assert.Contains(t, w.Body.String(), `"2026-03-02"`)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("redis failure falls through to a fresh build", func(t *testing.T) {
		redisClient, redisMock := redismock.NewClientMock()
		svc := &fakeMatrixService{
			buildMatrixFn: func(ctx context.Context, q availability.MatrixQuery) (availability.MatrixResponse, error) {
				return sampleMatrix, nil
			},
		}
		h := availability.NewHandler(svc, redisClient)

		redisMock.ExpectGet(cacheKey).SetErr(assert.AnError)

		w := performMatrixRequest(h, "/availability/matrix?start_date=2026-03-02&end_date=2026-03-06")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, svc.calls)
	})

	t.Run("worker ids are sorted into the cache key", func(t *testing.T) {
		redisClient, redisMock := redismock.NewClientMock()
		svc := &fakeMatrixService{
			buildMatrixFn: func(ctx context.Context, q availability.MatrixQuery) (availability.MatrixResponse, error) {
				assert.Equal(t, []string{"w2", "w1"}, q.WorkerIDs)
				return sampleMatrix, nil
			},
		}
		h := availability.NewHandler(svc, redisClient)

		sortedKey := "availability:matrix:2026-03-02:2026-03-06:w1,w2:welding"
		raw, _ := json.Marshal(sampleMatrix)
		redisMock.ExpectGet(sortedKey).RedisNil()
		redisMock.ExpectSet(sortedKey, raw, 60*time.Second).SetVal("OK")

		w := performMatrixRequest(h, "/availability/matrix?start_date=2026-03-02&end_date=2026-03-06&worker_ids=w2,w1&skill=welding")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("disconnected caller does not cancel the shared build", func(t *testing.T) {
		redisClient, redisMock := redismock.NewClientMock()
		svc := &fakeMatrixService{
			buildMatrixFn: func(ctx context.Context, q availability.MatrixQuery) (availability.MatrixResponse, error) {
				assert.NoError(t, ctx.Err())
				return sampleMatrix, nil
			},
		}
		h := availability.NewHandler(svc, redisClient)

		raw, _ := json.Marshal(sampleMatrix)
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSet(cacheKey, raw, 60*time.Second).SetVal("OK")

		gone, cancel := context.WithCancel(context.Background())
		cancel()
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(
			http.MethodGet,
			"/availability/matrix?start_date=2026-03-02&end_date=2026-03-06",
			nil,
		).WithContext(gone)

		h.GetMatrix(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, svc.calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative missing dates", func(t *testing.T) {
		redisClient, _ := redismock.NewClientMock()
		h := availability.NewHandler(&fakeMatrixService{}, redisClient)

		w := performMatrixRequest(h, "/availability/matrix")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("negative no cache client still serves", func(t *testing.T) {
		svc := &fakeMatrixService{
			buildMatrixFn: func(ctx context.Context, q availability.MatrixQuery) (availability.MatrixResponse, error) {
				return sampleMatrix, nil
			},
		}
		h := availability.NewHandler(svc, nil)

		w := performMatrixRequest(h, "/availability/matrix?start_date=2026-03-02&end_date=2026-03-06")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, svc.calls)
	})
}

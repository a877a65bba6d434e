package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	availabilityerrors "github.com/skylift/workforce/internal/availability/errors"
	"github.com/skylift/workforce/internal/shared/apperror"
	"github.com/skylift/workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const matrixCacheTTL = 60 * time.Second

type Handler struct {
	service Service
	cache   *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewHandler(service Service, cache *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("availability.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("availability.handler")
	}
	return &Handler{service: service, cache: cache, sf: &singleflight.Group{}, logger: l}
}

// GetMatrix serves the availability matrix for a date range, cached for a
// minute per distinct query. The cache is best-effort: a Redis failure falls
// through to a fresh build.
func (h *Handler) GetMatrix(c *gin.Context) {
	ctx := c.Request.Context()

	q, err := parseMatrixQuery(c)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	cacheKey := matrixCacheKey(q)
	if cached := h.readCache(ctx, cacheKey); cached != nil {
		response.Success(c, http.StatusOK, cached, nil)
		return
	}

	// Concurrent requests for the same range share one build. The build
	// context must outlive the caller that started it: a coalesced request
	// may still be waiting after the first one disconnects.
	buildCtx := context.WithoutCancel(ctx)
	v, err, _ := h.sf.Do(cacheKey, func() (interface{}, error) {
		matrix, err := h.service.BuildMatrix(buildCtx, q)
		if err != nil {
			return nil, err
		}
		h.writeCache(buildCtx, cacheKey, matrix)
		return matrix, nil
	})
	if err != nil {
		h.logger.Error("build matrix failed",
			zap.String("start_date", q.StartDate.Format("2006-01-02")),
			zap.String("end_date", q.EndDate.Format("2006-01-02")),
			zap.Error(err),
		)
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, v.(MatrixResponse), nil)
}

func (h *Handler) readCache(ctx context.Context, key string) *MatrixResponse {
	if h.cache == nil {
		return nil
	}
	raw, err := h.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			h.logger.Warn("matrix cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var cached MatrixResponse
	if err := json.Unmarshal(raw, &cached); err != nil {
		h.logger.Warn("matrix cache decode failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &cached
}

func (h *Handler) writeCache(ctx context.Context, key string, matrix MatrixResponse) {
	if h.cache == nil {
		return
	}
	raw, err := json.Marshal(matrix)
	if err != nil {
		h.logger.Warn("matrix cache encode failed", zap.Error(err))
		return
	}
	if err := h.cache.Set(ctx, key, raw, matrixCacheTTL).Err(); err != nil {
		h.logger.Warn("matrix cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func matrixCacheKey(q MatrixQuery) string {
	ids := append([]string(nil), q.WorkerIDs...)
	sort.Strings(ids)
	return "availability:matrix:" +
		q.StartDate.Format("2006-01-02") + ":" +
		q.EndDate.Format("2006-01-02") + ":" +
		strings.Join(ids, ",") + ":" +
		q.Skill
}

func parseMatrixQuery(c *gin.Context) (MatrixQuery, error) {
	var q MatrixQuery

	start, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		return q, availabilityerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		return q, availabilityerrors.ErrInvalidDateFormat
	}
	q.StartDate = start
	q.EndDate = end

	if v := c.Query("worker_ids"); v != "" {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				q.WorkerIDs = append(q.WorkerIDs, id)
			}
		}
	}
	q.Skill = strings.TrimSpace(c.Query("skill"))

	return q, nil
}

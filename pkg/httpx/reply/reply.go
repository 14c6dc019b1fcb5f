package reply

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"homescout/internal/domain"
	"homescout/pkg/contextx"
	"homescout/pkg/errcodes"
	"homescout/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func Accepted(w http.ResponseWriter) {
	w.WriteHeader(http.StatusAccepted)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

// Error переводит доменную ошибку в HTTP-статус. "Нет результатов" сюда
// не попадает: пустая выборка — успешный ответ, а не ошибка.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	logger(ctx).Error("error", logx.Error(err))

	code, ok := domain.GetCode(err)
	if !ok {
		code = errcodes.InternalServerError
	}

	response := errorResponse{
		Code:      code.String(),
		Message:   err.Error(),
		SupportID: supportID(ctx),
	}

	JSON(ctx, w, statusFor(code), response)
}

func statusFor(code errcodes.Code) int {
	switch code {
	case errcodes.ValidationError, errcodes.InvalidCommunityID,
		errcodes.InvalidWeights, errcodes.UnsupportedCity:
		return http.StatusBadRequest
	case errcodes.NotFound, errcodes.CommunityNotFound:
		return http.StatusNotFound
	case errcodes.FetchFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}

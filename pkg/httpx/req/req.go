package req

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"homescout/internal/domain"
	"homescout/pkg/errcodes"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary         //nolint:gochecknoglobals // skip
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip
)

// Read декодирует JSON-тело запроса и валидирует результат. Некорректные
// входные данные отклоняются здесь, до того как попадут в доменные сервисы.
func Read(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return domain.WrapError(
			fmt.Errorf("json.Decode: %w", err),
			errcodes.ValidationError,
			"invalid JSON",
		)
	}

	if err := validate.StructCtx(r.Context(), dest); err != nil {
		return domain.WrapError(err, errcodes.ValidationError, "validation error")
	}

	return nil
}

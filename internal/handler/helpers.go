package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Legeek117/projet-stock/internal/apierror"
	"github.com/Legeek117/projet-stock/internal/model"
	"github.com/Legeek117/projet-stock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps domain errors to HTTP status codes. Unknown errors are
// reported as 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	var notFound *service.ProductNotFoundError
	var insufficient *service.InsufficientStockError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.WithCode(apierror.CodeNotFound, err.Error()))
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, apierror.WithCode(apierror.CodeInsufficientStock, err.Error()))
	case errors.Is(err, model.ErrInvalidMovementType):
		c.JSON(http.StatusBadRequest, apierror.WithCode(apierror.CodeInvalidMovement, err.Error()))
	case errors.Is(err, service.ErrProductReferenced):
		c.JSON(http.StatusConflict, apierror.WithCode(apierror.CodeConflict, err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.WithCode(apierror.CodeUnauthorized, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.WithCode(apierror.CodeInternal, "internal server error"))
	}
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Skufu/heartrisk/internal/apperr"
	"github.com/Skufu/heartrisk/internal/logging"
	"github.com/Skufu/heartrisk/internal/predict"
	"github.com/Skufu/heartrisk/internal/schema"
	"github.com/Skufu/heartrisk/internal/viz"
)

// Predictor is the part of predict.Service the handlers need.
type Predictor interface {
	Predict(ctx context.Context, rec schema.PatientRecord) (*predict.Outcome, error)
	Columns() []string
}

// PredictHandler serves the form page and the prediction API.
type PredictHandler struct {
	svc Predictor
}

func NewPredictHandler(svc Predictor) *PredictHandler {
	return &PredictHandler{svc: svc}
}

type fieldView struct {
	schema.Field
	Value string
	Error string
}

type pageView struct {
	Fields  []fieldView
	Outcome *predict.Outcome
	Radar   viz.RadarData
	Error   string
}

func newPage(rec schema.PatientRecord, fieldErrs map[string]string) pageView {
	fs := schema.Fields()
	views := make([]fieldView, len(fs))
	for i, f := range fs {
		views[i] = fieldView{Field: f, Value: formValue(rec, f), Error: fieldErrs[f.Name]}
	}
	return pageView{Fields: views, Radar: viz.Radar(rec)}
}

func formValue(rec schema.PatientRecord, f schema.Field) string {
	if f.Kind == schema.KindCategorical {
		v, _ := rec.Category(f.Name)
		return v
	}
	v, _ := rec.Numeric(f.Name)
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Index renders the form with default values and the radar overview.
func (h *PredictHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPage(schema.Defaults(), nil))
}

// PredictForm handles the Predict button of the form page.
func (h *PredictHandler) PredictForm(c *gin.Context) {
	rec := schema.Defaults()
	if err := c.ShouldBindWith(&rec, binding.Form); err != nil {
		bindErr := bindingError(err)
		page := newPage(rec, bindErr.Fields)
		page.Error = bindErr.Message
		c.HTML(apperr.HTTPStatus(bindErr), "index.html", page)
		return
	}

	page := newPage(rec, nil)
	out, err := h.svc.Predict(c.Request.Context(), rec)
	if err != nil {
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("prediction failed")
		page.Error = "prediction is unavailable"
		c.HTML(apperr.HTTPStatus(err), "index.html", page)
		return
	}
	page.Outcome = out
	c.HTML(http.StatusOK, "index.html", page)
}

// PredictJSON accepts a PatientRecord as JSON. Omitted fields keep their defaults.
func (h *PredictHandler) PredictJSON(c *gin.Context) {
	rec := schema.Defaults()
	if err := c.ShouldBindJSON(&rec); err != nil {
		bindErr := bindingError(err)
		if bindErr.Type == apperr.ErrorTypeValidation {
			c.JSON(apperr.HTTPStatus(bindErr), gin.H{
				"error":  "validation_failed",
				"fields": bindErr.Fields,
			})
			return
		}
		c.JSON(apperr.HTTPStatus(bindErr), gin.H{
			"error":   "invalid payload",
			"details": bindErr.Err.Error(),
		})
		return
	}

	out, err := h.svc.Predict(c.Request.Context(), rec)
	if err != nil {
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("prediction failed")
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error": strings.ToLower(string(apperr.TypeOf(err))),
		})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Schema describes the form fields and the feature columns the model expects.
func (h *PredictHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fields":         schema.Fields(),
		"featureColumns": h.svc.Columns(),
		"defaults":       schema.Defaults(),
	})
}

// bindingError classifies a gin binding failure: domain violations become
// validation errors with per-field messages, anything else is invalid input.
func bindingError(err error) *apperr.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.NewInvalidInputError("invalid form submission", err)
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		label := name
		if f, ok := schema.Lookup(name); ok {
			label = f.Label
		}
		out[name] = fieldMessage(label, fe)
	}
	return apperr.NewValidationError("some values are outside their allowed range", out)
}

func fieldMessage(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", label, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", label)
}

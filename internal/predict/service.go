package predict

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skufu/heartrisk/internal/apperr"
	"github.com/Skufu/heartrisk/internal/encoder"
	"github.com/Skufu/heartrisk/internal/logging"
	"github.com/Skufu/heartrisk/internal/model"
	"github.com/Skufu/heartrisk/internal/risk"
	"github.com/Skufu/heartrisk/internal/schema"
	"github.com/Skufu/heartrisk/internal/viz"
)

// Outcome is everything the results view shows for one submission.
type Outcome struct {
	RequestID   string               `json:"requestId"`
	Record      schema.PatientRecord `json:"record"`
	Label       int                  `json:"label"`
	Probability float64              `json:"probability"`
	Display     string               `json:"display"`
	Tier        risk.Tier            `json:"tier"`
	Message     string               `json:"message"`
	Severity    string               `json:"severity"`
	Gauge       viz.GaugeData        `json:"gauge"`
	Radar       viz.RadarData        `json:"radar"`
}

// Service runs encode, scale, infer and classify for one record at a time.
type Service struct {
	artifacts *model.Artifacts
}

func NewService(artifacts *model.Artifacts) *Service {
	return &Service{artifacts: artifacts}
}

// Columns exposes the feature column schema the service encodes against.
func (s *Service) Columns() []string {
	return s.artifacts.Columns()
}

func (s *Service) Predict(ctx context.Context, rec schema.PatientRecord) (*Outcome, error) {
	logger := logging.FromContext(ctx)

	vec, err := encoder.Encode(rec, s.artifacts.Columns())
	if err != nil {
		return nil, apperr.NewConfigurationError("encode record", err)
	}

	scaled, err := s.artifacts.Scale(vec)
	if err != nil {
		return nil, err
	}

	res, err := s.artifacts.Infer(scaled)
	if err != nil {
		return nil, err
	}

	tier := risk.Classify(res.Probability)
	out := &Outcome{
		RequestID:   requestID(ctx),
		Record:      rec,
		Label:       res.Label,
		Probability: res.Probability,
		Display:     fmt.Sprintf("%.2f%%", res.Probability),
		Tier:        tier,
		Message:     tier.Message(),
		Severity:    tier.Severity(),
		Gauge:       viz.Gauge(res.Probability),
		Radar:       viz.Radar(rec),
	}

	logger.Info().
		Int("label", res.Label).
		Float64("probability", res.Probability).
		Str("tier", string(tier)).
		Msg("prediction completed")

	return out, nil
}

type requestIDKey struct{}

// WithRequestID tags ctx with the id of the current request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

package predictor

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/logger"
)

// Service is the prediction façade: validate, encode, score, scale.
// It is stateless per call; the schema is loaded once at construction and
// shared read-only by concurrent callers.
type Service struct {
	schema        FeatureSchema
	classifier    Classifier
	strictUnknown bool
	validate      *validator.Validate
}

// NewService fetches the trained feature schema from the classifier and
// returns a ready façade. strictUnknown selects the unknown-label policy:
// lenient (false) silently drops labels the schema does not know, strict
// rejects the request.
func NewService(ctx context.Context, classifier Classifier, strictUnknown bool) (*Service, error) {
	names, err := classifier.FeatureNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feature schema: %w", err)
	}
	logger.Info("feature schema loaded", "slots", len(names), "strict_unknown", strictUnknown)

	v := validator.New()
	v.SetTagName("binding")

	return &Service{
		schema:        NewFeatureSchema(names),
		classifier:    classifier,
		strictUnknown: strictUnknown,
		validate:      v,
	}, nil
}

// Schema returns the loaded feature schema.
func (s *Service) Schema() FeatureSchema {
	return s.schema
}

// Predict validates the request, encodes it against the schema and returns
// the classifier's positive-class probability as a percentage in [0,100].
// Validation failures short-circuit with a *ValidationError before any
// encoding or classification work.
func (s *Service) Predict(ctx context.Context, req Request) (float64, error) {
	if err := s.validate.Struct(req); err != nil {
		if ve, ok := AsValidationError(err); ok {
			return 0, ve
		}
		return 0, err
	}

	vector, unknownLabels := Encode(req, s.schema)
	if len(unknownLabels) > 0 {
		if s.strictUnknown {
			ve := &ValidationError{}
			for _, slot := range unknownLabels {
				ve.Violations = append(ve.Violations, FieldViolation{
					Field:   "labels",
					Rule:    "known",
					Message: fmt.Sprintf("label %q matches no feature slot", slot),
				})
			}
			return 0, ve
		}
		logger.Debug("unknown labels ignored", "labels", unknownLabels)
	}

	probability, err := s.classifier.PredictProba(ctx, vector)
	if err != nil {
		return 0, err
	}
	return probability * 100, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/draw"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
)

// PredictionService draws predictions without repeats and manages the saved
// (liked) predictions.
type PredictionService interface {
	// Catalog returns the full prediction catalog.
	Catalog() []domain.Prediction

	// Draw picks a prediction not drawn in the current cycle. Once every
	// prediction was drawn the cycle starts over.
	Draw(ctx context.Context, deviceID string) (domain.Prediction, error)

	// Saved returns the liked predictions, most recent first.
	Saved(ctx context.Context, deviceID string) ([]domain.Prediction, error)

	// IsSaved reports whether the prediction with id is liked.
	IsSaved(ctx context.Context, deviceID string, id int) (bool, error)

	// Toggle likes the catalog prediction with id, or unlikes it when it is
	// already saved. It reports whether the prediction is saved afterwards.
	Toggle(ctx context.Context, deviceID string, id int) (bool, []domain.Prediction, error)

	// ShareMessage returns the share text of the catalog prediction with id.
	ShareMessage(id int) (string, error)
}

type predictionServiceImpl struct {
	kv      kvAccess
	catalog []domain.Prediction

	rngMu sync.Mutex
	rng   draw.Source
}

var _ PredictionService = (*predictionServiceImpl)(nil)

// NewPredictionService creates a PredictionService over the built-in catalog.
// A nil rng is replaced by a time-seeded source.
func NewPredictionService(
	devices store.DeviceStore,
	rng draw.Source,
	logger *slog.Logger,
) (PredictionService, error) {
	if devices == nil {
		return nil, missing("prediction", "devices")
	}
	if rng == nil {
		rng = draw.NewSource(time.Now().UnixNano())
	}
	return &predictionServiceImpl{
		kv:      newKVAccess(devices, logger, "prediction_service"),
		catalog: domain.Catalog(),
		rng:     rng,
	}, nil
}

func (s *predictionServiceImpl) Catalog() []domain.Prediction {
	out := make([]domain.Prediction, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// ownerID is the id the used set is stored under: the registered user when
// there is one, the device otherwise.
func (s *predictionServiceImpl) ownerID(ctx context.Context, deviceID string) string {
	var profile domain.UserProfile
	if err := s.kv.read(ctx, deviceID, store.CurrentUserKey(deviceID), &profile); err == nil {
		return profile.ID.String()
	}
	return deviceID
}

func (s *predictionServiceImpl) Draw(ctx context.Context, deviceID string) (domain.Prediction, error) {
	if err := validateDevice(deviceID); err != nil {
		return domain.Prediction{}, err
	}

	key := store.UsedPredictionsKey(s.ownerID(ctx, deviceID))

	var used []int
	if err := s.kv.read(ctx, deviceID, key, &used); err != nil {
		used = nil
	}

	s.rngMu.Lock()
	picked, nextUsed, err := draw.Draw(s.catalog, used, s.rng)
	s.rngMu.Unlock()
	if err != nil {
		return domain.Prediction{}, NewServiceError("prediction", "draw", err)
	}

	s.kv.write(ctx, deviceID, key, nextUsed)
	return picked, nil
}

func (s *predictionServiceImpl) loadSaved(ctx context.Context, deviceID string) []domain.Prediction {
	var saved []domain.Prediction
	if err := s.kv.read(ctx, deviceID, store.KeySavedPredictions, &saved); err != nil || saved == nil {
		return []domain.Prediction{}
	}
	return saved
}

func (s *predictionServiceImpl) Saved(ctx context.Context, deviceID string) ([]domain.Prediction, error) {
	if err := validateDevice(deviceID); err != nil {
		return nil, err
	}
	return s.loadSaved(ctx, deviceID), nil
}

func (s *predictionServiceImpl) IsSaved(ctx context.Context, deviceID string, id int) (bool, error) {
	if err := validateDevice(deviceID); err != nil {
		return false, err
	}
	return domain.ContainsID(s.loadSaved(ctx, deviceID), id), nil
}

func (s *predictionServiceImpl) lookup(id int) (domain.Prediction, error) {
	for _, p := range s.catalog {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Prediction{}, domain.ErrPredictionNotFound
}

func (s *predictionServiceImpl) Toggle(
	ctx context.Context,
	deviceID string,
	id int,
) (bool, []domain.Prediction, error) {
	if err := validateDevice(deviceID); err != nil {
		return false, nil, err
	}

	prediction, err := s.lookup(id)
	if err != nil {
		return false, nil, err
	}

	saved, nowSaved := domain.ToggleByID(s.loadSaved(ctx, deviceID), prediction)
	s.kv.write(ctx, deviceID, store.KeySavedPredictions, saved)
	return nowSaved, saved, nil
}

func (s *predictionServiceImpl) ShareMessage(id int) (string, error) {
	prediction, err := s.lookup(id)
	if err != nil {
		if errors.Is(err, domain.ErrPredictionNotFound) {
			return "", domain.ErrNoPrediction
		}
		return "", err
	}
	return domain.PredictionShareMessage(prediction.Text)
}

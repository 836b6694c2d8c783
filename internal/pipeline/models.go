package pipeline

import (
	"fmt"

	"github.com/dgallion1/docoutline/internal/classify"
	"github.com/dgallion1/docoutline/internal/config"
)

// LoadModels connects the classifier stack described by cfg. Without a
// MODEL_URL it returns nil models and the outline falls back to
// numbering; the returned client is nil in that case too.
func LoadModels(cfg config.Config) (*classify.Models, *classify.RemoteClient, error) {
	if cfg.ModelURL == "" {
		return nil, nil, nil
	}

	reducer, err := classify.LoadLinearReducer(cfg.ReducerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load reducer: %w", err)
	}

	client := classify.NewRemoteClient(cfg.ModelURL, cfg.ModelAPIKey, cfg.ModelTimeout, cfg.MaxConcurrentClassify)
	models := &classify.Models{
		Embedder: client,
		Reducer:  reducer,
		Heading:  client,
		Level:    client,
		UseLevel: cfg.UseLevelClassifier,
	}
	return models, client, nil
}

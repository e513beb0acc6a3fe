package firebase

import (
	"context"
	"resto/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// New initializes the Firebase app. Without a credentials file the
// application default credentials are used.
func New(cfg *config.Config) *firebase.App {
	opts := []option.ClientOption{}
	if file := cfg.External.Firebase.CredentialsFile; file != "" {
		opts = append(opts, option.WithCredentialsFile(file))
	}

	app, err := firebase.NewApp(context.Background(), &firebase.Config{
		ProjectID: cfg.External.Firebase.ProjectID,
	}, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Firebase app")
	}

	log.Info().Str("project", cfg.External.Firebase.ProjectID).Msg("Firebase app initialized")

	return app
}

func NewAuth(app *firebase.App) *auth.Client {
	client, err := app.Auth(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Firebase Auth")
	}

	return client
}

func NewFirestore(app *firebase.App) *firestore.Client {
	client, err := app.Firestore(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Firestore")
	}

	return client
}

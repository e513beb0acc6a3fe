package repository

//go:generate go run go.uber.org/mock/mockgen -source=./document.go -destination=../mocks/document_mock.go -package=mocks

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"resto/config"
	"resto/infras/otel"
	"resto/internal/domains/reservation/model"
	"resto/shared/constant"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
)

const otelAttrDocumentID = "document_id"

// Document is the companion reservation store keyed by external identity.
type Document interface {
	Create(ctx context.Context, doc model.Document) (string, error)
	ListByOwner(ctx context.Context, externalID string) ([]model.Document, error)
	// FindByReservation returns the id of the document mirroring reservationID,
	// or empty when there is none.
	FindByReservation(ctx context.Context, reservationID string) (string, error)
	Update(ctx context.Context, documentID string, fields map[string]any) error
}

type documentImpl struct {
	client     *firestore.Client
	collection string
	otel       otel.Otel
}

func NewDocument(client *firestore.Client, cfg *config.Config, otel otel.Otel) Document {
	return &documentImpl{
		client:     client,
		collection: cfg.External.Firebase.Collection,
		otel:       otel,
	}
}

func (d *documentImpl) Create(ctx context.Context, doc model.Document) (id string, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelFirestoreScope, constant.OtelFirestoreScope+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ref, _, err := d.client.Collection(d.collection).Add(ctx, doc)
	if err != nil {
		log.Error().Err(err).Str("reservation_id", doc.ReservationID).Msg("failed to create reservation document")

		return constant.Empty, fmt.Errorf("failed to create reservation document: %w", err)
	}

	scope.SetAttribute(otelAttrDocumentID, ref.ID)

	return ref.ID, nil
}

func (d *documentImpl) ListByOwner(ctx context.Context, externalID string) (docs []model.Document, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelFirestoreScope, constant.OtelFirestoreScope+".ListByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	snapshots, err := d.client.Collection(d.collection).
		Where(model.DocumentFieldUserID, "==", externalID).
		Documents(ctx).
		GetAll()
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservation documents")

		return nil, fmt.Errorf("failed to list reservation documents: %w", err)
	}

	docs = make([]model.Document, 0, len(snapshots))

	for _, snapshot := range snapshots {
		var doc model.Document
		if err = snapshot.DataTo(&doc); err != nil {
			log.Error().Err(err).Str(otelAttrDocumentID, snapshot.Ref.ID).Msg("failed to decode reservation document")

			return nil, fmt.Errorf("failed to decode reservation document: %w", err)
		}

		doc.ID = snapshot.Ref.ID
		docs = append(docs, doc)
	}

	return docs, nil
}

func (d *documentImpl) FindByReservation(ctx context.Context, reservationID string) (id string, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelFirestoreScope, constant.OtelFirestoreScope+".FindByReservation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	snapshots, err := d.client.Collection(d.collection).
		Where(model.DocumentFieldReservationID, "==", reservationID).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		log.Error().Err(err).Str("reservation_id", reservationID).Msg("failed to find reservation document")

		return constant.Empty, fmt.Errorf("failed to find reservation document: %w", err)
	}

	if len(snapshots) == 0 {
		return constant.Empty, nil
	}

	scope.SetAttribute(otelAttrDocumentID, snapshots[0].Ref.ID)

	return snapshots[0].Ref.ID, nil
}

// Update sets fields on the document and stamps updatedAt with the server time.
func (d *documentImpl) Update(ctx context.Context, documentID string, fields map[string]any) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelFirestoreScope, constant.OtelFirestoreScope+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrDocumentID, documentID)

	updates := make([]firestore.Update, 0, len(fields)+1)
	for _, path := range slices.Sorted(maps.Keys(fields)) {
		updates = append(updates, firestore.Update{Path: path, Value: fields[path]})
	}

	updates = append(updates, firestore.Update{Path: model.DocumentFieldUpdatedAt, Value: firestore.ServerTimestamp})

	if _, err = d.client.Collection(d.collection).Doc(documentID).Update(ctx, updates); err != nil {
		log.Error().Err(err).Str(otelAttrDocumentID, documentID).Msg("failed to update reservation document")

		return fmt.Errorf("failed to update reservation document: %w", err)
	}

	return nil
}

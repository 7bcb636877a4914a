package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/pkg/i18n"
	"flowx-relief/internal/service/request"
)

const linkExpiry = 24 * time.Hour

var ErrStorageUnavailable = errors.New("report storage is not configured")

// ObjectStore is the part of the minio client used for reports.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

type Report struct {
	Object    string    `json:"object"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service interface {
	// ExportHistory writes the actor's request history as CSV to object
	// storage and returns a time limited download link.
	ExportHistory(ctx context.Context, actor domain.Actor, kind *domain.RequestKind, locale string) (*Report, error)
}

type service struct {
	requests request.Service
	store    ObjectStore
	bucket   string
	now      func() time.Time
}

func NewService(requests request.Service, store ObjectStore, bucket string) Service {
	return &service{
		requests: requests,
		store:    store,
		bucket:   bucket,
		now:      time.Now,
	}
}

func (s *service) ExportHistory(ctx context.Context, actor domain.Actor, kind *domain.RequestKind, locale string) (*Report, error) {
	if !actor.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	items, err := s.requests.ListForActor(ctx, actor, domain.RequestFilter{View: domain.ViewHistory, Kind: kind})
	if err != nil {
		return nil, err
	}

	data, err := encodeCSV(items, locale)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	now := s.now().UTC()
	object := fmt.Sprintf("reports/%s/%s-%s.csv", actor.Role, actor.ID, now.Format("20060102T150405"))
	_, err = s.store.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return nil, fmt.Errorf("upload report: %w", err)
	}

	link, err := s.store.PresignedGetObject(ctx, s.bucket, object, linkExpiry, nil)
	if err != nil {
		return nil, fmt.Errorf("sign report url: %w", err)
	}

	return &Report{
		Object:    object,
		URL:       link.String(),
		Rows:      len(items),
		ExpiresAt: now.Add(linkExpiry),
	}, nil
}

var header = []string{
	"id", "kind", "status", "flood_id", "title", "category", "emergency_level",
	"divisional_secretariat_id", "grama_niladhari_division_id", "house_id", "quantity", "remarks", "created_at",
}

func encodeCSV(items []domain.Request, locale string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range items {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			i18n.Translate(locale, "KIND_"+string(r.Kind)),
			i18n.StatusLabel(locale, string(r.Status)),
			strconv.FormatInt(r.FloodID, 10),
			r.Title,
			deref(r.Category),
			derefLevel(r.EmergencyLevel),
			strconv.FormatInt(r.DivisionalSecretariatID, 10),
			formatID(r.GNDivisionID),
			formatID(r.HouseID),
			formatQuantity(r.Quantity),
			deref(r.Remarks),
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefLevel(l *domain.EmergencyLevel) string {
	if l == nil {
		return ""
	}
	return string(*l)
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func formatQuantity(q *int) string {
	if q == nil {
		return ""
	}
	return strconv.Itoa(*q)
}

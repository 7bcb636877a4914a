package report

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/pkg/i18n"
	"flowx-relief/internal/service/request"
)

type historyLister struct {
	request.Service
	items  []domain.Request
	filter domain.RequestFilter
}

func (h *historyLister) ListForActor(ctx context.Context, actor domain.Actor, filter domain.RequestFilter) ([]domain.Request, error) {
	h.filter = filter
	return h.items, nil
}

type memStore struct {
	objects map[string][]byte
	putErr  error
}

func (m *memStore) PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if m.putErr != nil {
		return minio.UploadInfo{}, m.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	m.objects[bucket+"/"+object] = data
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: size}, nil
}

func (m *memStore) PresignedGetObject(ctx context.Context, bucket, object string, expires time.Duration, params url.Values) (*url.URL, error) {
	return url.Parse("https://files.example.org/" + bucket + "/" + object + "?X-Amz-Expires=" + expires.String())
}

func TestExportHistory(t *testing.T) {
	require.NoError(t, i18n.LoadTranslations("../../../locales"))

	gn := int64(31)
	lister := &historyLister{items: []domain.Request{
		{ID: 2, Kind: domain.KindVictim, Status: domain.StatusApproved, FloodID: 1, Title: "Roof, walls", DivisionalSecretariatID: 5, GNDivisionID: &gn},
		{ID: 1, Kind: domain.KindVictim, Status: domain.StatusPending, FloodID: 1, Title: "Food", DivisionalSecretariatID: 5, GNDivisionID: &gn},
	}}
	store := &memStore{objects: map[string][]byte{}}
	svc := NewService(lister, store, "reports").(*service)
	svc.now = func() time.Time { return time.Date(2025, 5, 20, 8, 30, 0, 0, time.UTC) }

	actor := domain.Actor{ID: uuid.New(), Role: domain.RoleGramaSevaka, GNDivisionID: &gn}
	rep, err := svc.ExportHistory(context.Background(), actor, nil, "en")
	require.NoError(t, err)

	assert.Equal(t, domain.ViewHistory, lister.filter.View)
	assert.Equal(t, 2, rep.Rows)
	assert.True(t, strings.HasPrefix(rep.Object, "reports/grama_sevaka/"+actor.ID.String()))
	assert.Contains(t, rep.URL, "https://files.example.org/reports/")
	assert.Equal(t, time.Date(2025, 5, 21, 8, 30, 0, 0, time.UTC), rep.ExpiresAt)

	rows, err := csv.NewReader(strings.NewReader(string(store.objects["reports/"+rep.Object]))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "Roof, walls", rows[1][4])
	assert.Equal(t, "31", rows[1][8])
}

func TestExportHistory_CitizenForbidden(t *testing.T) {
	svc := NewService(&historyLister{}, &memStore{objects: map[string][]byte{}}, "reports")
	_, err := svc.ExportHistory(context.Background(), domain.Actor{Role: domain.RoleCitizen}, nil, "en")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestExportHistory_UploadFailure(t *testing.T) {
	store := &memStore{objects: map[string][]byte{}, putErr: errors.New("connection refused")}
	svc := NewService(&historyLister{}, store, "reports")
	_, err := svc.ExportHistory(context.Background(), domain.Actor{Role: domain.RoleAdmin}, nil, "en")
	assert.ErrorContains(t, err, "upload report")
}

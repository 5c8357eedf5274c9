package persistence_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/2beens/gymtrack/internal/persistence"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/go-redis/redismock/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
		// docker client keep-alive conns in integration runs
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

const snapshotKey = "gymtrack-snapshot"

var snapshotBytes = []byte(`{"trainings":[],"activeTrainingId":""}`)

// adapterContract runs the behavior every backend must share.
func adapterContract(t *testing.T, adapter persistence.Adapter) {
	t.Helper()
	ctx := context.Background()

	_, err := adapter.Get(ctx, snapshotKey)
	require.ErrorIs(t, err, persistence.ErrKeyNotFound)

	require.NoError(t, adapter.Set(ctx, snapshotKey, snapshotBytes))
	got, err := adapter.Get(ctx, snapshotKey)
	require.NoError(t, err)
	assert.Equal(t, snapshotBytes, got)

	updated := []byte(`{"trainings":[],"activeTrainingId":"abc"}`)
	require.NoError(t, adapter.Set(ctx, snapshotKey, updated))
	got, err = adapter.Get(ctx, snapshotKey)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = adapter.Get(ctx, "other-key")
	assert.ErrorIs(t, err, persistence.ErrKeyNotFound)
}

func TestMemory(t *testing.T) {
	adapterContract(t, persistence.NewMemory())
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := persistence.NewMemory()

	value := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[0] = 'y'
	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestFile(t *testing.T) {
	rootPath := filepath.Join(t.TempDir(), "data")
	f, err := persistence.NewFile(rootPath)
	require.NoError(t, err)

	adapterContract(t, f)

	entries, err := os.ReadDir(rootPath)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are renamed away")
	assert.Equal(t, snapshotKey+".json", entries[0].Name())
}

func TestFile_InvalidKey(t *testing.T) {
	f, err := persistence.NewFile(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, f.Set(context.Background(), key, snapshotBytes), key)
		_, err := f.Get(context.Background(), key)
		assert.Error(t, err, key)
	}

	_, err = persistence.NewFile("")
	assert.Error(t, err)
}

func TestSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "gymtrack.db")
	db, err := persistence.OpenSQLite(context.Background(), dbPath)
	require.NoError(t, err)

	adapterContract(t, db)
	require.NoError(t, db.Close())

	// survives reopening
	db, err = persistence.OpenSQLite(context.Background(), dbPath)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Get(context.Background(), snapshotKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"trainings":[],"activeTrainingId":"abc"}`), got)
}

func TestRedis(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()
	r := persistence.NewRedis(db)

	mock.ExpectGet(snapshotKey).RedisNil()
	_, err := r.Get(ctx, snapshotKey)
	assert.ErrorIs(t, err, persistence.ErrKeyNotFound)

	mock.ExpectSet(snapshotKey, snapshotBytes, 0).SetVal("OK")
	require.NoError(t, r.Set(ctx, snapshotKey, snapshotBytes))

	mock.ExpectGet(snapshotKey).SetVal(string(snapshotBytes))
	got, err := r.Get(ctx, snapshotKey)
	require.NoError(t, err)
	assert.Equal(t, snapshotBytes, got)

	mock.ExpectGet(snapshotKey).SetErr(errors.New("connection refused"))
	_, err = r.Get(ctx, snapshotKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, persistence.ErrKeyNotFound)

	mock.ExpectSet(snapshotKey, snapshotBytes, 0).SetErr(errors.New("readonly"))
	assert.Error(t, r.Set(ctx, snapshotKey, snapshotBytes))

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, db.Close())
}

func TestS3_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	s3Mock := NewMocks3API(ctrl)
	adapter := persistence.NewS3(s3Mock, "training-bucket", "users/serj/")
	ctx := context.Background()

	expectedInput := &s3.GetObjectInput{
		Bucket: aws.String("training-bucket"),
		Key:    aws.String("users/serj/" + snapshotKey + ".json"),
	}

	s3Mock.EXPECT().GetObject(gomock.Any(), expectedInput).Return(nil, &types.NoSuchKey{})
	_, err := adapter.Get(ctx, snapshotKey)
	assert.ErrorIs(t, err, persistence.ErrKeyNotFound)

	s3Mock.EXPECT().GetObject(gomock.Any(), expectedInput).Return(&s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(snapshotBytes)),
	}, nil)
	got, err := adapter.Get(ctx, snapshotKey)
	require.NoError(t, err)
	assert.Equal(t, snapshotBytes, got)

	s3Mock.EXPECT().GetObject(gomock.Any(), expectedInput).Return(nil, errors.New("access denied"))
	_, err = adapter.Get(ctx, snapshotKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, persistence.ErrKeyNotFound)
}

func TestS3_Set(t *testing.T) {
	ctrl := gomock.NewController(t)
	s3Mock := NewMocks3API(ctrl)
	adapter := persistence.NewS3(s3Mock, "training-bucket", "")

	s3Mock.EXPECT().
		PutObject(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Equal(t, "training-bucket", aws.ToString(input.Bucket))
			assert.Equal(t, snapshotKey+".json", aws.ToString(input.Key))
			assert.Equal(t, "application/json", aws.ToString(input.ContentType))
			assert.Equal(t, int64(len(snapshotBytes)), aws.ToInt64(input.ContentLength))
			body, err := io.ReadAll(input.Body)
			require.NoError(t, err)
			assert.Equal(t, snapshotBytes, body)
			return &s3.PutObjectOutput{}, nil
		})
	require.NoError(t, adapter.Set(context.Background(), snapshotKey, snapshotBytes))

	s3Mock.EXPECT().PutObject(gomock.Any(), gomock.Any()).Return(nil, errors.New("slow down"))
	assert.Error(t, adapter.Set(context.Background(), snapshotKey, snapshotBytes))
}

type fakeRow struct {
	value []byte
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*[]byte) = r.value
	return nil
}

func TestPostgres(t *testing.T) {
	ctrl := gomock.NewController(t)
	poolMock := NewMockpgxPool(ctrl)
	ctx := context.Background()

	poolMock.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(pgconn.NewCommandTag("CREATE TABLE"), nil)
	pg, err := persistence.NewPostgres(ctx, poolMock)
	require.NoError(t, err)

	poolMock.EXPECT().QueryRow(gomock.Any(), gomock.Any(), snapshotKey).Return(fakeRow{err: pgx.ErrNoRows})
	_, err = pg.Get(ctx, snapshotKey)
	assert.ErrorIs(t, err, persistence.ErrKeyNotFound)

	poolMock.EXPECT().QueryRow(gomock.Any(), gomock.Any(), snapshotKey).Return(fakeRow{value: snapshotBytes})
	got, err := pg.Get(ctx, snapshotKey)
	require.NoError(t, err)
	assert.Equal(t, snapshotBytes, got)

	poolMock.EXPECT().Exec(gomock.Any(), gomock.Any(), snapshotKey, snapshotBytes).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)
	require.NoError(t, pg.Set(ctx, snapshotKey, snapshotBytes))

	poolMock.EXPECT().Exec(gomock.Any(), gomock.Any(), snapshotKey, snapshotBytes).Return(pgconn.NewCommandTag("INSERT 0 0"), nil)
	assert.Error(t, pg.Set(ctx, snapshotKey, snapshotBytes))
}

func TestPostgres_CreateTableFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	poolMock := NewMockpgxPool(ctrl)

	poolMock.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(pgconn.CommandTag{}, errors.New("permission denied"))
	_, err := persistence.NewPostgres(context.Background(), poolMock)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	backend, err := persistence.Open(ctx, persistence.OpenParams{})
	require.NoError(t, err)
	assert.IsType(t, &persistence.Memory{}, backend)

	backend, err = persistence.Open(ctx, persistence.OpenParams{
		Backend:      persistence.BackendFile,
		FileRootPath: t.TempDir(),
	})
	require.NoError(t, err)
	assert.IsType(t, &persistence.File{}, backend)

	backend, err = persistence.Open(ctx, persistence.OpenParams{
		Backend:    persistence.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "x.db"),
	})
	require.NoError(t, err)
	assert.IsType(t, &persistence.SQLite{}, backend)
	require.NoError(t, backend.Close())

	_, err = persistence.Open(ctx, persistence.OpenParams{Backend: persistence.BackendRedis})
	assert.Error(t, err)
	_, err = persistence.Open(ctx, persistence.OpenParams{Backend: persistence.BackendPostgres})
	assert.Error(t, err)
	_, err = persistence.Open(ctx, persistence.OpenParams{Backend: persistence.BackendS3})
	assert.Error(t, err, "bucket is required")
	_, err = persistence.Open(ctx, persistence.OpenParams{Backend: "etcd"})
	assert.Error(t, err)
}

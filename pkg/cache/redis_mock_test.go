package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPurgeEvent_ScanErrorSkipsDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	inv := NewInvalidator(db)
	id := uuid.New()

	mock.ExpectScan(0, itemPrefix+id.String()+":*", 100).SetErr(errors.New("connection reset"))
	mock.ExpectScan(0, listPrefix+"*", 100).SetVal([]string{}, 0)

	inv.PurgeEvent(context.Background(), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurgeEvent_DeletesScannedKeys(t *testing.T) {
	db, mock := redismock.NewClientMock()
	inv := NewInvalidator(db)
	id := uuid.New()
	item := ItemKey(id.String(), "/api/events/:id", "")
	list := ListKey("/api/events", "")

	mock.ExpectScan(0, itemPrefix+id.String()+":*", 100).SetVal([]string{item}, 0)
	mock.ExpectDel(item).SetVal(1)
	mock.ExpectScan(0, listPrefix+"*", 100).SetVal([]string{list}, 0)
	mock.ExpectDel(list).SetErr(errors.New("READONLY"))

	inv.PurgeEvent(context.Background(), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck_PingFailure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectPing().SetErr(errors.New("connection refused"))

	err := HealthCheck(context.Background(), db)

	assert.ErrorContains(t, err, "redis health check failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

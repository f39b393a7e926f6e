package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/domain"
)

func TestInventoryItem_ExpiryClassification(t *testing.T) {
	today := time.Date(2026, 10, 14, 15, 30, 0, 0, time.Local)
	day := func(offset int) time.Time { return domain.DateOf(today).AddDate(0, 0, offset) }

	cases := []struct {
		offset   int
		expired  bool
		expiring bool
	}{
		{-1, true, false},
		{0, false, true},
		{30, false, true},
		{31, false, false},
	}
	for _, c := range cases {
		item := domain.InventoryItem{Quantity: 100, Expiration: day(c.offset)}
		assert.Equal(t, c.offset, item.DaysUntilExpiry(today))
		assert.Equal(t, c.expired, item.IsExpired(today), "offset %d", c.offset)
		assert.Equal(t, c.expiring, item.IsExpiringSoon(today), "offset %d", c.offset)
	}
}

func TestInventoryItem_NoExpiration(t *testing.T) {
	item := domain.InventoryItem{Quantity: 10}

	assert.False(t, item.HasExpiration())
	assert.False(t, item.IsExpired(time.Now()))
	assert.False(t, item.IsExpiringSoon(time.Now()))
}

func TestInventoryItem_LowStockBoundary(t *testing.T) {
	assert.True(t, domain.InventoryItem{Quantity: 49}.IsLowStock())
	assert.False(t, domain.InventoryItem{Quantity: 50}.IsLowStock())
}

func TestInventoryItem_MarshalJSON(t *testing.T) {
	withDate, err := json.Marshal(domain.InventoryItem{UPID: "MED-1", Location: "A1", Quantity: 5, Expiration: time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), Name: "Aspirin"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"upid":"MED-1","location":"A1","quantity":5,"expiration":"2027-03-01","name":"Aspirin"}`, string(withDate))

	noDate, err := json.Marshal(domain.InventoryItem{UPID: "MED-2", Location: "B2", Quantity: 1, Name: "Gauze"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"upid":"MED-2","location":"B2","quantity":1,"expiration":null,"name":"Gauze"}`, string(noDate))
}

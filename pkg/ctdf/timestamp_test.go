package ctdf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampOrdering(t *testing.T) {
	assert.True(t, Timestamp{9, 0}.After(Timestamp{8, 59}))
	assert.True(t, Timestamp{8, 31}.After(Timestamp{8, 30}))
	assert.False(t, Timestamp{8, 30}.After(Timestamp{8, 30}))
	assert.True(t, Timestamp{23, 45}.Before(Timestamp{23, 46}))
}

func TestTimestampJSON(t *testing.T) {
	encoded, err := json.Marshal(Connection{Depart: Timestamp{6, 5}, Arrive: Timestamp{13, 10}, TrainNumber: "101"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"depart":"06:05","arrive":"13:10","train_number":"101"}`, string(encoded))

	var decoded Connection
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, Timestamp{13, 10}, decoded.Arrive)
}

func TestTimestampOnDate(t *testing.T) {
	day := time.Date(2026, time.October, 19, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.October, 19, 23, 45, 0, 0, time.UTC), Timestamp{23, 45}.OnDate(day))
}

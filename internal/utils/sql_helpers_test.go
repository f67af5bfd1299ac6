package utils

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullStringToString(t *testing.T) {
	assert.Equal(t, "hello", NullStringToString(sql.NullString{String: "hello", Valid: true}))
	assert.Equal(t, "", NullStringToString(sql.NullString{String: "ignored", Valid: false}))
}

func TestNullStringToPointer(t *testing.T) {
	p := NullStringToPointer(sql.NullString{String: "hello", Valid: true})
	require.NotNil(t, p)
	assert.Equal(t, "hello", *p)

	assert.Nil(t, NullStringToPointer(sql.NullString{Valid: false}))
}

func TestNullIntConversions(t *testing.T) {
	assert.Equal(t, 42, NullInt64ToInt(sql.NullInt64{Int64: 42, Valid: true}))
	assert.Equal(t, 0, NullInt64ToInt(sql.NullInt64{Valid: false}))

	p := NullInt64ToPointer(sql.NullInt64{Int64: 7, Valid: true})
	require.NotNil(t, p)
	assert.Equal(t, 7, *p)
	assert.Nil(t, NullInt64ToPointer(sql.NullInt64{Valid: false}))

	assert.Equal(t, 90, NullInt32ToInt(sql.NullInt32{Int32: 90, Valid: true}))
	assert.Equal(t, 0, NullInt32ToInt(sql.NullInt32{Valid: false}))
}

func TestNullTimeConversions(t *testing.T) {
	now := time.Now()

	assert.Equal(t, now, NullTimeToTime(sql.NullTime{Time: now, Valid: true}))
	assert.True(t, NullTimeToTime(sql.NullTime{Valid: false}).IsZero())

	p := NullTimeToPointer(sql.NullTime{Time: now, Valid: true})
	require.NotNil(t, p)
	assert.Equal(t, now, *p)
	assert.Nil(t, NullTimeToPointer(sql.NullTime{Valid: false}))
}

func TestNullBoolToBool(t *testing.T) {
	assert.True(t, NullBoolToBool(sql.NullBool{Bool: true, Valid: true}))
	assert.False(t, NullBoolToBool(sql.NullBool{Bool: true, Valid: false}))
}

func TestNullStringToStringArray(t *testing.T) {
	assert.Equal(t, []string{"cardio", "core"}, NullStringToStringArray(sql.NullString{String: "{cardio,core}", Valid: true}))
	assert.Equal(t, []string{"cardio"}, NullStringToStringArray(sql.NullString{String: "{cardio}", Valid: true}))
	assert.Equal(t, []string{}, NullStringToStringArray(sql.NullString{String: "{}", Valid: true}))
	assert.Equal(t, []string{}, NullStringToStringArray(sql.NullString{Valid: false}))
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bathudi/admissions/internal/app/repositories/inmem"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseResolver_Resolve(t *testing.T) {
	store := inmem.NewCourseStore()
	engine := seedCourse(t, store, "Occupational Certificate: Automotive Engine Repairer")
	clutch := seedCourse(t, store, "Occupational Certificate: Automotive Clutch and Brake Repairer")
	welding := seedCourse(t, store, "Welding Basics")

	resolver := NewCourseResolver(store, ResolverConfig{KeyMapping: testMapping}, zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name   string
		key    string
		wantID int64
	}{
		{name: "mapped key matches title fragment", key: "automotive_engine_repairer", wantID: engine.ID},
		{name: "second mapped key", key: "automotive_clutch_brake_repairer", wantID: clutch.ID},
		{name: "surrounding whitespace ignored", key: "  automotive_engine_repairer ", wantID: engine.ID},
		{name: "unmapped key falls back to exact title", key: "welding basics", wantID: welding.ID},
		{name: "unknown key", key: "pastry_chef"},
		{name: "empty key", key: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(ctx, tt.key)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestCourseResolver_LowestIDWinsOnSeveralMatches(t *testing.T) {
	store := inmem.NewCourseStore()
	first := seedCourse(t, store, "Automotive Engine Repairer (Weekday)")
	seedCourse(t, store, "Automotive Engine Repairer (Weekend)")

	resolver := NewCourseResolver(store, ResolverConfig{KeyMapping: testMapping}, zerolog.Nop())
	got := resolver.Resolve(context.Background(), "automotive_engine_repairer")
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
}

func TestCourseResolver_MappedKeyWithoutCourseFallsBackToTitle(t *testing.T) {
	store := inmem.NewCourseStore()
	exact := seedCourse(t, store, "automotive_clutch_brake_repairer")

	resolver := NewCourseResolver(store, ResolverConfig{KeyMapping: testMapping}, zerolog.Nop())
	got := resolver.Resolve(context.Background(), "automotive_clutch_brake_repairer")
	require.NotNil(t, got)
	assert.Equal(t, exact.ID, got.ID)
}

func TestCourseResolver_StoreErrorIsUnresolved(t *testing.T) {
	store := inmem.NewCourseStore()
	seedCourse(t, store, "Occupational Certificate: Automotive Engine Repairer")
	store.Err = errors.New("connection refused")

	resolver := NewCourseResolver(store, ResolverConfig{KeyMapping: testMapping}, zerolog.Nop())
	assert.Nil(t, resolver.Resolve(context.Background(), "automotive_engine_repairer"))
	assert.Nil(t, resolver.Resolve(context.Background(), "Welding Basics"))
}

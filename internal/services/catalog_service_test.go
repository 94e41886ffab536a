package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/services/fakes"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	*routineFixture
	steps        *fakes.StepStore
	translations *fakes.TranslationStore
	languages    *fakes.LanguageStore
	tags         *fakes.TagStore

	stepSvc        *StepService
	translationSvc *TranslationService
	tagSvc         *TagService
	languageSvc    *LanguageService

	ownStep  *models.RoutineStep
	tmplStep *models.RoutineStep
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		routineFixture: newRoutineFixture(),
		steps:          fakes.NewStepStore(),
		translations:   fakes.NewTranslationStore(),
		languages:      fakes.NewLanguageStore(models.Language{Code: "SWE", Name: "Svenska"}, models.Language{Code: "ENG", Name: "Engelska"}),
		tags:           fakes.NewTagStore(),
	}
	f.stepSvc = NewStepService(f.svc, f.steps, discardLogger())
	f.translationSvc = NewTranslationService(f.svc, f.steps, f.translations, f.languages, discardLogger())
	f.tagSvc = NewTagService(f.tags, f.svc, discardLogger())
	f.languageSvc = NewLanguageService(f.languages, discardLogger())

	f.ownStep = f.steps.Put(models.RoutineStep{RoutineID: f.own.ID, Order: 1, SimpleText: "Tvätta"})
	f.tmplStep = f.steps.Put(models.RoutineStep{RoutineID: f.tmpl.ID, Order: 1, SimpleText: "Skölj"})
	return f
}

func TestStepService(t *testing.T) {
	f := newCatalogFixture()
	owner := access.Caller{UserID: f.user1}
	other := access.Caller{UserID: f.user2}

	t.Run("list follows routine visibility", func(t *testing.T) {
		steps, err := f.stepSvc.List(context.Background(), owner, f.own.ID)
		require.NoError(t, err)
		assert.Len(t, steps, 1)

		_, err = f.stepSvc.List(context.Background(), other, f.own.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create on own routine", func(t *testing.T) {
		step, err := f.stepSvc.Create(context.Background(), owner, f.own.ID, StepInput{Order: 2, SimpleText: "Torka"})
		require.NoError(t, err)
		assert.Equal(t, f.own.ID, step.RoutineID)
	})

	t.Run("create on template of someone else", func(t *testing.T) {
		_, err := f.stepSvc.Create(context.Background(), owner, f.tmpl.ID, StepInput{Order: 2, SimpleText: "x"})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("update checks step belongs to routine", func(t *testing.T) {
		_, err := f.stepSvc.Update(context.Background(), access.Caller{UserID: f.user1, IsAdmin: true}, f.own.ID, f.tmplStep.ID, StepInput{Order: 1, SimpleText: "x"})
		assert.ErrorIs(t, err, ErrNotFound)

		step, err := f.stepSvc.Update(context.Background(), owner, f.own.ID, f.ownStep.ID, StepInput{Order: 3, SimpleText: "Tvätta noga", IconKey: ptr("soap")})
		require.NoError(t, err)
		assert.Equal(t, 3, step.Order)
		stored, _ := f.steps.Get(f.ownStep.ID)
		assert.Equal(t, "Tvätta noga", stored.SimpleText)
	})

	t.Run("delete", func(t *testing.T) {
		err := f.stepSvc.Delete(context.Background(), other, f.own.ID, f.ownStep.ID)
		assert.ErrorIs(t, err, ErrForbidden)

		require.NoError(t, f.stepSvc.Delete(context.Background(), owner, f.own.ID, f.ownStep.ID))
		_, ok := f.steps.Get(f.ownStep.ID)
		assert.False(t, ok)
	})
}

func TestTranslationService(t *testing.T) {
	f := newCatalogFixture()
	owner := access.Caller{UserID: f.user1}
	other := access.Caller{UserID: f.user2}

	t.Run("create resolves language code", func(t *testing.T) {
		tr, err := f.translationSvc.Create(context.Background(), owner, f.ownStep.ID, "ENG", "Wash")
		require.NoError(t, err)
		require.NotNil(t, tr.Language)
		assert.Equal(t, "ENG", tr.Language.Code)

		list, err := f.translationSvc.List(context.Background(), owner, f.ownStep.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("unknown language is invalid", func(t *testing.T) {
		_, err := f.translationSvc.Create(context.Background(), owner, f.ownStep.ID, "XXX", "Wash")
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("unknown step", func(t *testing.T) {
		_, err := f.translationSvc.Create(context.Background(), owner, uuid.New(), "ENG", "Wash")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list hidden for non-owner", func(t *testing.T) {
		_, err := f.translationSvc.List(context.Background(), other, f.ownStep.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update and delete require ownership", func(t *testing.T) {
		tr := f.translations.Put(models.StepTranslation{RoutineStepID: f.ownStep.ID, Text: "Wash"})

		_, err := f.translationSvc.Update(context.Background(), other, tr.ID, "Scrub")
		assert.ErrorIs(t, err, ErrForbidden)

		updated, err := f.translationSvc.Update(context.Background(), owner, tr.ID, "Scrub")
		require.NoError(t, err)
		assert.Equal(t, "Scrub", updated.Text)

		require.NoError(t, f.translationSvc.Delete(context.Background(), owner, tr.ID))
		_, ok := f.translations.Get(tr.ID)
		assert.False(t, ok)

		assert.ErrorIs(t, f.translationSvc.Delete(context.Background(), owner, tr.ID), ErrNotFound)
	})
}

func TestTagService(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	tag, err := f.tagSvc.Create(ctx, "Hygien")
	require.NoError(t, err)

	t.Run("attach and detach", func(t *testing.T) {
		owner := access.Caller{UserID: f.user1}

		require.NoError(t, f.tagSvc.Attach(ctx, owner, f.own.ID, tag.ID))
		assert.True(t, f.tags.Linked(f.own.ID, tag.ID))

		require.NoError(t, f.tagSvc.Detach(ctx, owner, f.own.ID, tag.ID))
		assert.False(t, f.tags.Linked(f.own.ID, tag.ID))

		assert.ErrorIs(t, f.tagSvc.Detach(ctx, owner, f.own.ID, tag.ID), ErrNotFound)
	})

	t.Run("attach requires ownership", func(t *testing.T) {
		err := f.tagSvc.Attach(ctx, access.Caller{UserID: f.user2}, f.own.ID, tag.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.False(t, f.tags.Linked(f.own.ID, tag.ID))
	})

	t.Run("attach unknown tag", func(t *testing.T) {
		err := f.tagSvc.Attach(ctx, access.Caller{UserID: f.user1}, f.own.ID, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("catalog crud", func(t *testing.T) {
		updated, err := f.tagSvc.Update(ctx, tag.ID, "Personlig hygien")
		require.NoError(t, err)
		assert.Equal(t, "Personlig hygien", updated.Name)

		list, err := f.tagSvc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		require.NoError(t, f.tagSvc.Delete(ctx, tag.ID))
		_, err = f.tagSvc.Get(ctx, tag.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, f.tagSvc.Delete(ctx, tag.ID), ErrNotFound)
	})
}

func TestLanguageService(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	lang, err := f.languageSvc.Create(ctx, "FIN", "Finska")
	require.NoError(t, err)
	assert.Equal(t, "FIN", lang.Code)

	_, err = f.languageSvc.Create(ctx, "SWE", "Svenska igen")
	assert.ErrorIs(t, err, ErrConflict)

	got, err := f.languageSvc.GetByCode(ctx, "SWE")
	require.NoError(t, err)
	assert.Equal(t, "Svenska", got.Name)

	_, err = f.languageSvc.GetByCode(ctx, "XXX")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := f.languageSvc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

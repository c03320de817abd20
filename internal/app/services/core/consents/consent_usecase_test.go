package consents

import (
	"context"
	"fmt"
	"testing"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/drivers/database"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type recordingActionLog struct {
	entries []models.ActionLogEntry
}

func (s *recordingActionLog) Record(ctx context.Context, entry *models.ActionLogEntry) error {
	s.entries = append(s.entries, *entry)
	return nil
}

type consentFixture struct {
	db        *gorm.DB
	usecase   *consentUsecase
	actionLog *recordingActionLog
}

func newConsentFixture(t *testing.T) *consentFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	actionLog := &recordingActionLog{}
	usecase := &consentUsecase{
		DB:                db,
		ConsentRepository: NewConsentGormRepository(db),
		ActionLogService:  actionLog,
		InternalConfig: &config.InternalConfig{
			Consent: config.Consent{
				PolicyVersion:     "1.0",
				ExpiryInDays:      365,
				DebounceInSeconds: 300,
			},
		},
		Log: zap.NewNop(),
	}
	return &consentFixture{db: db, usecase: usecase, actionLog: actionLog}
}

func knownActor() *contracts.Actor {
	return &contracts.Actor{ID: 42, Email: "patient@example.com", Role: models.RolePatient}
}

func TestStoreConsent(t *testing.T) {
	t.Run("Records A Decision For A Logged In User", func(t *testing.T) {
		f := newConsentFixture(t)

		response, err := f.usecase.StoreConsent(context.Background(), knownActor(), &requests.StoreConsent{
			Decisions: requests.ConsentDecisions{Analytics: true},
			PageURL:   "/welcome",
			Method:    "banner",
		})
		require.NoError(t, err)
		require.NotNil(t, response.UserID)
		assert.Equal(t, uint(42), *response.UserID)
		assert.True(t, response.Decisions.Analytics)
		assert.False(t, response.Decisions.Marketing)
		assert.Equal(t, "1.0", response.PolicyVersion)
		require.Len(t, f.actionLog.entries, 1)
		assert.Equal(t, constvars.ActionConsentRecorded, f.actionLog.entries[0].Action)
	})

	t.Run("Essential Is Always Granted", func(t *testing.T) {
		f := newConsentFixture(t)

		response, err := f.usecase.StoreConsent(context.Background(), knownActor(), &requests.StoreConsent{
			Decisions: requests.ConsentDecisions{Essential: false},
		})
		require.NoError(t, err)
		assert.True(t, response.Decisions.Essential, "essential cookies cannot be refused")
	})

	t.Run("Anonymous Visitor Gets A Stable Subject", func(t *testing.T) {
		f := newConsentFixture(t)

		response, err := f.usecase.StoreConsent(context.Background(), nil, &requests.StoreConsent{
			Decisions: requests.ConsentDecisions{Functional: true},
			UserAgent: "Mozilla/5.0",
			RemoteIP:  "192.0.2.7",
		})
		require.NoError(t, err)
		assert.Nil(t, response.UserID)
		assert.Len(t, response.AnonymousID, 32)
	})

	t.Run("Provided Anonymous ID Is Reused", func(t *testing.T) {
		f := newConsentFixture(t)

		first, err := f.usecase.StoreConsent(context.Background(), nil, &requests.StoreConsent{
			AnonymousID: "visitor-abc",
			Decisions:   requests.ConsentDecisions{Analytics: true},
		})
		require.NoError(t, err)
		assert.Equal(t, "visitor-abc", first.AnonymousID)
	})

	t.Run("Identical Resubmission Within Debounce Is Dropped", func(t *testing.T) {
		f := newConsentFixture(t)
		request := &requests.StoreConsent{Decisions: requests.ConsentDecisions{Analytics: true}}

		first, err := f.usecase.StoreConsent(context.Background(), knownActor(), request)
		require.NoError(t, err)
		second, err := f.usecase.StoreConsent(context.Background(), knownActor(), request)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID, "the existing row is returned untouched")

		var count int64
		require.NoError(t, f.db.Model(&models.CookieConsent{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
		assert.Len(t, f.actionLog.entries, 1, "no audit entry for the dropped duplicate")
	})

	t.Run("Changed Decisions Supersede The Previous Row", func(t *testing.T) {
		f := newConsentFixture(t)

		first, err := f.usecase.StoreConsent(context.Background(), knownActor(), &requests.StoreConsent{
			Decisions: requests.ConsentDecisions{Analytics: true},
		})
		require.NoError(t, err)

		second, err := f.usecase.StoreConsent(context.Background(), knownActor(), &requests.StoreConsent{
			Decisions: requests.ConsentDecisions{Analytics: true, Marketing: true},
		})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		var previous models.CookieConsent
		require.NoError(t, f.db.First(&previous, first.ID).Error)
		require.NotNil(t, previous.WithdrawnAt)
		assert.Equal(t, constvars.ConsentWithdrawalSuperseded, previous.WithdrawalReason)

		var current models.CookieConsent
		require.NoError(t, f.db.First(&current, second.ID).Error)
		assert.Nil(t, current.WithdrawnAt)
	})

	t.Run("Identical Decisions After The Debounce Window Return The Existing Row", func(t *testing.T) {
		f := newConsentFixture(t)
		request := &requests.StoreConsent{Decisions: requests.ConsentDecisions{Analytics: true}}

		first, err := f.usecase.StoreConsent(context.Background(), knownActor(), request)
		require.NoError(t, err)
		require.NoError(t, f.db.Model(&models.CookieConsent{}).
			Where("id = ?", first.ID).
			Update("created_at", time.Now().UTC().Add(-10*time.Minute)).Error)

		second, err := f.usecase.StoreConsent(context.Background(), knownActor(), request)
		require.NoError(t, err)
		assert.Equal(t, second.ID, first.ID, "only differing decisions supersede")

		var count int64
		require.NoError(t, f.db.Model(&models.CookieConsent{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		var row models.CookieConsent
		require.NoError(t, f.db.First(&row, first.ID).Error)
		assert.Nil(t, row.WithdrawnAt, "the active row stays active")
	})
}

func TestWithdrawConsent(t *testing.T) {
	t.Run("Marks The Active Row Withdrawn", func(t *testing.T) {
		f := newConsentFixture(t)
		stored, err := f.usecase.StoreConsent(context.Background(), knownActor(), &requests.StoreConsent{
			Decisions: requests.ConsentDecisions{Analytics: true},
		})
		require.NoError(t, err)

		err = f.usecase.WithdrawConsent(context.Background(), knownActor(), &requests.WithdrawConsent{
			Reason: "changed my mind",
		})
		require.NoError(t, err)

		var row models.CookieConsent
		require.NoError(t, f.db.First(&row, stored.ID).Error)
		require.NotNil(t, row.WithdrawnAt)
		assert.Equal(t, "changed my mind", row.WithdrawalReason)
	})

	t.Run("Nothing Active To Withdraw", func(t *testing.T) {
		f := newConsentFixture(t)

		err := f.usecase.WithdrawConsent(context.Background(), knownActor(), &requests.WithdrawConsent{
			Reason: "nothing there",
		})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeNotFound, customErr.ErrorCode)
	})

	t.Run("Second Withdrawal Finds Nothing", func(t *testing.T) {
		f := newConsentFixture(t)
		_, err := f.usecase.StoreConsent(context.Background(), knownActor(), &requests.StoreConsent{
			Decisions: requests.ConsentDecisions{Analytics: true},
		})
		require.NoError(t, err)

		require.NoError(t, f.usecase.WithdrawConsent(context.Background(), knownActor(), &requests.WithdrawConsent{Reason: "first"}))
		err = f.usecase.WithdrawConsent(context.Background(), knownActor(), &requests.WithdrawConsent{Reason: "second"})
		assert.Error(t, err)
	})

	t.Run("Anonymous Subjects Withdraw By ID", func(t *testing.T) {
		f := newConsentFixture(t)
		_, err := f.usecase.StoreConsent(context.Background(), nil, &requests.StoreConsent{
			AnonymousID: "visitor-xyz",
			Decisions:   requests.ConsentDecisions{Marketing: true},
		})
		require.NoError(t, err)

		err = f.usecase.WithdrawConsent(context.Background(), nil, &requests.WithdrawConsent{
			AnonymousID: "visitor-xyz",
			Reason:      "leave me alone",
		})
		assert.NoError(t, err)
	})
}

func TestConsentHistoryAndStats(t *testing.T) {
	f := newConsentFixture(t)
	actor := knownActor()

	_, err := f.usecase.StoreConsent(context.Background(), actor, &requests.StoreConsent{
		Decisions: requests.ConsentDecisions{Analytics: true},
	})
	require.NoError(t, err)
	_, err = f.usecase.StoreConsent(context.Background(), actor, &requests.StoreConsent{
		Decisions: requests.ConsentDecisions{Analytics: true, Marketing: true},
	})
	require.NoError(t, err)
	_, err = f.usecase.StoreConsent(context.Background(), nil, &requests.StoreConsent{
		AnonymousID: "visitor-1",
		Decisions:   requests.ConsentDecisions{},
	})
	require.NoError(t, err)

	t.Run("History Shows The Subject's Full Ledger", func(t *testing.T) {
		history, total, err := f.usecase.History(context.Background(), *actor, &requests.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, history, 2)
	})

	t.Run("List Is Staff Only", func(t *testing.T) {
		_, _, err := f.usecase.List(context.Background(), *actor, &requests.Pagination{Page: 1, PageSize: 10})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeForbidden, customErr.ErrorCode)

		all, total, err := f.usecase.List(context.Background(), contracts.Actor{ID: 1, Role: models.RoleCoordinator}, &requests.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, all, 3)
	})

	t.Run("Stats Split Active And Withdrawn", func(t *testing.T) {
		stats, err := f.usecase.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.Total)
		assert.Equal(t, int64(2), stats.Active, "the superseded row counts as withdrawn")
		assert.Equal(t, int64(1), stats.Withdrawn)
	})
}

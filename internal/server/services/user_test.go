package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/portobook/portobook/internal/common"
	"github.com/portobook/portobook/internal/models"
	"github.com/portobook/portobook/internal/server/auth"
)

func newUserService(t *testing.T) (*UserService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	return NewUserService(env.db, env.rm, auth.NewBcryptHasher(), env.cfg), env
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice123", "correcthorse")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID)

	ok, err := svc.Exists(ctx, "alice123")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = svc.Exists(ctx, "nobody99")
	require.NoError(t, err)
	require.False(t, ok)

	got, err := svc.Login(ctx, "alice123", "correcthorse")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestRegister_RejectsWeakCredentials(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "al", "correcthorse")
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.Register(ctx, "alice123", "short")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice123", "correcthorse")
	require.NoError(t, err)

	// unknown user and wrong password are indistinguishable
	_, err = svc.Login(ctx, "nobody99", "correcthorse")
	require.ErrorIs(t, err, common.ErrBadCredentials)
	_, err = svc.Login(ctx, "alice123", "wronghorse")
	require.ErrorIs(t, err, common.ErrBadCredentials)
}

func TestLogin_Throttle(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Register(ctx, "alice123", "correcthorse")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Login(ctx, "alice123", "wronghorse")
		require.ErrorIs(t, err, common.ErrBadCredentials)
		now = now.Add(time.Second)
	}

	// the limit is reached; even the right password is rejected
	_, err = svc.Login(ctx, "alice123", "correcthorse")
	require.ErrorIs(t, err, common.ErrLoginThrottled)

	// once the window passes the counter expires
	now = now.Add(time.Minute)
	got, err := svc.Login(ctx, "alice123", "correcthorse")
	require.NoError(t, err)
	require.Zero(t, got.Attempts)

	// and a successful login reset the counter for the next failures
	_, err = svc.Login(ctx, "alice123", "wronghorse")
	require.ErrorIs(t, err, common.ErrBadCredentials)
}

func TestUpdateUsername(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice123", "correcthorse")
	require.NoError(t, err)

	require.ErrorIs(t, svc.UpdateUsername(ctx, user.ID, "al"), common.ErrValidation)
	require.NoError(t, svc.UpdateUsername(ctx, user.ID, "alice456"))

	_, err = svc.Login(ctx, "alice456", "correcthorse")
	require.NoError(t, err)
}

func TestUpdatePassword(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice123", "correcthorse")
	require.NoError(t, err)

	require.ErrorIs(t, svc.UpdatePassword(ctx, user.ID, "wronghorse", "newpassword"), common.ErrBadCredentials)
	require.ErrorIs(t, svc.UpdatePassword(ctx, user.ID, "correcthorse", "short"), common.ErrValidation)
	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "correcthorse", "newpassword"))

	_, err = svc.Login(ctx, "alice123", "correcthorse")
	require.ErrorIs(t, err, common.ErrBadCredentials)
	_, err = svc.Login(ctx, "alice123", "newpassword")
	require.NoError(t, err)
}

func TestDelete_CascadesEverythingOwned(t *testing.T) {
	svc, env := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice123", "correcthorse")
	require.NoError(t, err)

	account, err := env.rm.Accounts(env.db).Create(ctx, &models.Account{
		Name: "Main Broker", Alias: "main", Owner: user.ID, Kind: models.KindNRA,
	})
	require.NoError(t, err)

	cad := models.Currency("CAD")
	_, err = env.rm.Transactions(env.db).Create(ctx, &models.Transaction{
		Account: account.ID,
		Date:    models.NewDate(2024, 3, 15),
		Action: models.NewTxnAction(models.Deposit{
			Value: models.Value{Amount: decimal.NewFromInt(100), Asset: cad},
			Fee:   models.Value{Amount: decimal.NewFromInt(0), Asset: cad},
		}),
	})
	require.NoError(t, err)

	asset, err := env.rm.Assets(env.db).Create(ctx, &models.Asset{
		AssetID: models.Crypto("BTC"), Name: "My Bitcoin", Owner: &user.ID,
	})
	require.NoError(t, err)
	require.NoError(t, env.rm.Assets(env.db).UpsertPrices(ctx, []models.PriceObservation{{
		Asset: asset.ID, Date: models.NewDate(2024, 3, 15),
		Price: decimal.RequireFromString("90000"), Currency: cad,
	}}))

	require.ErrorIs(t, svc.Delete(ctx, user.ID, "wronghorse"), common.ErrBadCredentials)
	require.NoError(t, svc.Delete(ctx, user.ID, "correcthorse"))

	_, err = env.rm.Users(env.db).ByID(ctx, user.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
	accs, err := env.rm.Accounts(env.db).ByOwner(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, accs)
	txns, err := env.rm.Transactions(env.db).ByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Empty(t, txns)
	_, err = env.rm.Assets(env.db).ByID(ctx, asset.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = env.rm.Assets(env.db).PriceAsOf(ctx, asset.ID, models.NewDate(2024, 12, 31))
	require.ErrorIs(t, err, common.ErrNotFound)

	// deleting an absent user succeeds
	require.NoError(t, svc.Delete(ctx, user.ID, "correcthorse"))
}

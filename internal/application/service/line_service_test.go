package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenixpos/fenix-api/internal/domain/entity"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
	"github.com/fenixpos/fenix-api/pkg/apperror"
)

func TestAddLine_SnapshotsProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.openOrder(t, enum.OrderKindDineIn, &env.table.ID)

	updated, err := env.lineService.AddLine(ctx, order.ID, &AddLineInput{
		ProductID: env.taco.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	require.Len(t, updated.Lines, 1)
	line := updated.Lines[0]
	assert.Equal(t, "Tacos al pastor", line.ProductName)
	assert.Equal(t, "TACO-PASTOR", line.ProductSKU)
	assert.True(t, d("95.00").Equal(line.UnitPrice))
	assert.True(t, d("190.00").Equal(line.Amount))
	assert.Equal(t, 0, line.Position)

	// Itemized 16%: 190.00 + 30.40
	assert.True(t, d("190.00").Equal(updated.SubTotal))
	assert.True(t, d("30.40").Equal(updated.Tax))
	assert.True(t, d("220.40").Equal(updated.Total))
}

func TestAddLine_CatalogEditDoesNotAlterOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.openOrder(t, enum.OrderKindTakeaway, nil)
	env.addLine(t, order.ID, env.taco, 1)

	// Reprice the catalog after the line was added.
	env.store.mu.Lock()
	p := env.store.products[env.taco.ID]
	p.Price = d("120.00")
	env.store.products[env.taco.ID] = p
	env.store.mu.Unlock()

	got, err := env.orderService.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, d("95.00").Equal(got.Lines[0].UnitPrice), "line keeps the price snapshot")
}

func TestAddLine_QuantityValidation(t *testing.T) {
	env := newTestEnv(t)
	order := env.openOrder(t, enum.OrderKindDineIn, &env.table.ID)

	_, err := env.lineService.AddLine(context.Background(), order.ID, &AddLineInput{
		ProductID: env.taco.ID,
		Quantity:  0,
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestAddLine_InactiveProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.openOrder(t, enum.OrderKindDineIn, &env.table.ID)

	retired := entity.Product{ID: uuid.New(), RestaurantID: env.restaurant.ID, Name: "Torta ahogada", Price: d("80.00"), Active: false}
	env.store.mu.Lock()
	env.store.products[retired.ID] = retired
	env.store.mu.Unlock()

	_, err := env.lineService.AddLine(ctx, order.ID, &AddLineInput{ProductID: retired.ID, Quantity: 1})

	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestAddLine_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	order := env.openOrder(t, enum.OrderKindDineIn, &env.table.ID)

	_, err := env.lineService.AddLine(context.Background(), order.ID, &AddLineInput{ProductID: uuid.New(), Quantity: 1})

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestAddLine_ReadyOrderRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.openInProgressOrder(t)
	_, err := env.orderService.MarkReady(ctx, order.ID)
	require.NoError(t, err)

	_, err = env.lineService.AddLine(ctx, order.ID, &AddLineInput{ProductID: env.soda.ID, Quantity: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestAddLine_PaidOrderRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.openInProgressOrder(t)
	_, err := env.orderService.Pay(ctx, order.ID, env.payCash("249.40"))
	require.NoError(t, err)

	_, err = env.lineService.AddLine(ctx, order.ID, &AddLineInput{ProductID: env.soda.ID, Quantity: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestUpdateQuantity_Recomputes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.openOrder(t, enum.OrderKindDineIn, &env.table.ID)
	updated, err := env.lineService.AddLine(ctx, order.ID, &AddLineInput{ProductID: env.taco.ID, Quantity: 1})
	require.NoError(t, err)
	lineID := updated.Lines[0].ID

	updated, err = env.lineService.UpdateQuantity(ctx, order.ID, lineID, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(3), updated.Lines[0].Quantity)
	assert.True(t, d("285.00").Equal(updated.Lines[0].Amount))
	assert.True(t, d("285.00").Equal(updated.SubTotal))
}

func TestRemoveLine_Recomputes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.openOrder(t, enum.OrderKindDineIn, &env.table.ID)
	updated, err := env.lineService.AddLine(ctx, order.ID, &AddLineInput{ProductID: env.taco.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = env.lineService.AddLine(ctx, order.ID, &AddLineInput{ProductID: env.soda.ID, Quantity: 1})
	require.NoError(t, err)

	updated, err = env.lineService.RemoveLine(ctx, order.ID, updated.Lines[0].ID)
	require.NoError(t, err)

	require.Len(t, updated.Lines, 1)
	assert.Equal(t, "Agua mineral", updated.Lines[0].ProductName)
	assert.True(t, d("25.00").Equal(updated.SubTotal))
}

func TestRemoveLine_WrongOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.openOrder(t, enum.OrderKindTakeaway, nil)
	second := env.openOrder(t, enum.OrderKindTakeaway, nil)
	updated, err := env.lineService.AddLine(ctx, first.ID, &AddLineInput{ProductID: env.taco.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = env.lineService.RemoveLine(ctx, second.ID, updated.Lines[0].ID)

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestListLines_OrderNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.lineService.ListLines(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

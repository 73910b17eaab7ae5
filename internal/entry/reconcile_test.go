package entry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/contas/internal/entry"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func payments(amounts ...string) []*entry.Payment {
	out := make([]*entry.Payment, len(amounts))
	for i, a := range amounts {
		out[i] = &entry.Payment{
			ID:     uuid.New(),
			Amount: dec(a),
			PaidAt: time.Date(2024, 6, 1+i, 0, 0, 0, 0, time.UTC),
			Method: entry.MethodPix,
		}
	}

	return out
}

func TestReconcile(t *testing.T) {
	type args struct {
		amount   string
		status   entry.Status
		payments []*entry.Payment
	}

	type testCase struct {
		name          string
		args          args
		wantPaid      string
		wantRemaining string
		wantStatus    entry.Status
		wantErr       error
	}

	tests := []testCase{
		{
			name:          "NoPayments",
			args:          args{amount: "100.00", status: entry.StatusOpen},
			wantPaid:      "0",
			wantRemaining: "100",
			wantStatus:    entry.StatusOpen,
		},
		{
			name:          "Partial",
			args:          args{amount: "100.00", status: entry.StatusOpen, payments: payments("60.00")},
			wantPaid:      "60",
			wantRemaining: "40",
			wantStatus:    entry.StatusPartial,
		},
		{
			name:          "ExactlyPaid",
			args:          args{amount: "100.00", status: entry.StatusPartial, payments: payments("60.00", "40.00")},
			wantPaid:      "100",
			wantRemaining: "0",
			wantStatus:    entry.StatusPaid,
		},
		{
			name:          "NoFloatDrift",
			args:          args{amount: "0.30", status: entry.StatusOpen, payments: payments("0.10", "0.20")},
			wantPaid:      "0.3",
			wantRemaining: "0",
			wantStatus:    entry.StatusPaid,
		},
		{
			name:          "OneCentShort",
			args:          args{amount: "100.00", status: entry.StatusOpen, payments: payments("99.99")},
			wantPaid:      "99.99",
			wantRemaining: "0.01",
			wantStatus:    entry.StatusPartial,
		},
		{
			name:          "CanceledOverridesPartial",
			args:          args{amount: "100.00", status: entry.StatusCanceled, payments: payments("30.00")},
			wantPaid:      "30",
			wantRemaining: "70",
			wantStatus:    entry.StatusCanceled,
		},
		{
			name:          "StaleStoredStatusIsRecomputed",
			args:          args{amount: "100.00", status: entry.StatusPaid, payments: payments("10.00")},
			wantPaid:      "10",
			wantRemaining: "90",
			wantStatus:    entry.StatusPartial,
		},
		{
			name:    "Overpaid",
			args:    args{amount: "100.00", status: entry.StatusPaid, payments: payments("80.00", "30.00")},
			wantErr: entry.ErrConsistency,
		},
		{
			name:    "NonPositiveAmount",
			args:    args{amount: "0", status: entry.StatusOpen},
			wantErr: entry.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entry.Reconcile(dec(tt.args.amount), tt.args.status, tt.args.payments)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, dec(tt.wantPaid).Equal(got.PaidTotal), "paid total: %s", got.PaidTotal)
			assert.True(t, dec(tt.wantRemaining).Equal(got.Remaining), "remaining: %s", got.Remaining)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestReconcile_ConsistencyErrorCarriesTotals(t *testing.T) {
	_, err := entry.Reconcile(dec("50.00"), entry.StatusPartial, payments("30.00", "30.00"))

	var consistency *entry.ConsistencyError
	require.True(t, errors.As(err, &consistency))
	assert.True(t, dec("60").Equal(consistency.PaidTotal))
	assert.True(t, dec("50").Equal(consistency.Amount))
}

func TestReconcile_Idempotent(t *testing.T) {
	ps := payments("12.34", "20.00")

	first, err := entry.Reconcile(dec("100.00"), entry.StatusOpen, ps)
	require.NoError(t, err)

	second, err := entry.Reconcile(dec("100.00"), entry.StatusOpen, ps)
	require.NoError(t, err)

	assert.True(t, first.PaidTotal.Equal(second.PaidTotal))
	assert.True(t, first.Remaining.Equal(second.Remaining))
	assert.Equal(t, first.Status, second.Status)
}

func TestAccept_Lifecycle(t *testing.T) {
	amount := dec("100.00")

	var (
		committed []*entry.Payment
		status    = entry.StatusOpen
		remaining = amount
	)

	steps := []struct {
		payment       string
		wantStatus    entry.Status
		wantRemaining string
	}{
		{payment: "60.00", wantStatus: entry.StatusPartial, wantRemaining: "40.00"},
		{payment: "40.00", wantStatus: entry.StatusPaid, wantRemaining: "0.00"},
	}

	for _, step := range steps {
		before, err := entry.Reconcile(amount, status, committed)
		require.NoError(t, err)

		rec, err := entry.Accept(amount, status, committed, dec(step.payment))
		require.NoError(t, err)

		assert.Equal(t, step.wantStatus, rec.Status)
		assert.True(t, dec(step.wantRemaining).Equal(rec.Remaining))
		assert.True(t, before.PaidTotal.Add(dec(step.payment)).Equal(rec.PaidTotal), "additivity")
		assert.True(t, rec.Remaining.LessThanOrEqual(remaining), "monotonicity")

		committed = append(committed, &entry.Payment{Amount: dec(step.payment)})
		status = rec.Status
		remaining = rec.Remaining

		after, err := entry.Reconcile(amount, status, committed)
		require.NoError(t, err)
		assert.Equal(t, rec.Status, after.Status)
		assert.True(t, rec.PaidTotal.Equal(after.PaidTotal))
		assert.True(t, rec.Remaining.Equal(after.Remaining))
	}
}

func TestAccept(t *testing.T) {
	type args struct {
		amount    string
		status    entry.Status
		payments  []*entry.Payment
		candidate string
	}

	type testCase struct {
		name       string
		args       args
		wantStatus entry.Status
		wantErr    error
	}

	tests := []testCase{
		{
			name:    "OverpaymentRejected",
			args:    args{amount: "100.00", status: entry.StatusPartial, payments: payments("50.00", "30.00"), candidate: "25.00"},
			wantErr: entry.ErrOverpayment,
		},
		{
			name:       "ExactRemainderAccepted",
			args:       args{amount: "100.00", status: entry.StatusPartial, payments: payments("50.00", "30.00"), candidate: "20.00"},
			wantStatus: entry.StatusPaid,
		},
		{
			name:    "ZeroRejected",
			args:    args{amount: "100.00", status: entry.StatusOpen, candidate: "0"},
			wantErr: entry.ErrInvalidAmount,
		},
		{
			name:    "NegativeRejected",
			args:    args{amount: "100.00", status: entry.StatusOpen, candidate: "-5.00"},
			wantErr: entry.ErrInvalidAmount,
		},
		{
			name:    "FractionOfCentRejected",
			args:    args{amount: "100.00", status: entry.StatusOpen, candidate: "99.995"},
			wantErr: entry.ErrInvalidAmount,
		},
		{
			name:    "BelowOneCentRejected",
			args:    args{amount: "100.00", status: entry.StatusOpen, candidate: "0.004"},
			wantErr: entry.ErrInvalidAmount,
		},
		{
			name:       "TrailingZerosAccepted",
			args:       args{amount: "100.00", status: entry.StatusOpen, candidate: "99.990"},
			wantStatus: entry.StatusPartial,
		},
		{
			name:    "PaidEntryRejected",
			args:    args{amount: "100.00", status: entry.StatusPaid, payments: payments("100.00"), candidate: "1.00"},
			wantErr: entry.ErrTerminalEntry,
		},
		{
			name:    "PaidEntryRejectedRegardlessOfAmount",
			args:    args{amount: "100.00", status: entry.StatusPaid, payments: payments("100.00"), candidate: "-1.00"},
			wantErr: entry.ErrTerminalEntry,
		},
		{
			name:    "CanceledEntryRejected",
			args:    args{amount: "100.00", status: entry.StatusCanceled, payments: payments("10.00"), candidate: "5.00"},
			wantErr: entry.ErrTerminalEntry,
		},
		{
			name:    "InconsistentStateSurfaces",
			args:    args{amount: "100.00", status: entry.StatusPaid, payments: payments("100.00", "0.01"), candidate: "1.00"},
			wantErr: entry.ErrConsistency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entry.Accept(dec(tt.args.amount), tt.args.status, tt.args.payments, dec(tt.args.candidate))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestAccept_OverpaymentReportsRemaining(t *testing.T) {
	_, err := entry.Accept(dec("100.00"), entry.StatusPartial, payments("80.00"), dec("25.00"))

	var over *entry.OverpaymentError
	require.True(t, errors.As(err, &over))
	assert.True(t, dec("20.00").Equal(over.Remaining))
	assert.Contains(t, over.Error(), "20.00")
}

func TestSortPayments(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

	first := &entry.Payment{ID: uuid.New(), PaidAt: day, CreatedAt: created}
	second := &entry.Payment{ID: uuid.New(), PaidAt: day, CreatedAt: created.Add(time.Minute)}
	earliest := &entry.Payment{ID: uuid.New(), PaidAt: day.AddDate(0, 0, -3), CreatedAt: created.Add(time.Hour)}

	ps := []*entry.Payment{second, first, earliest}
	entry.SortPayments(ps)

	assert.Equal(t, []*entry.Payment{earliest, first, second}, ps)
}

func TestValidAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{amount: "0.01", want: true},
		{amount: "1500", want: true},
		{amount: "10.500", want: true},
		{amount: "0", want: false},
		{amount: "-1.00", want: false},
		{amount: "0.004", want: false},
		{amount: "99.995", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, entry.ValidAmount(dec(tt.amount)))
		})
	}
}

package queries

import (
	"context"
)

type GetFundQueryHandler struct {
	funds FundReader
}

func NewGetFundQueryHandler(funds FundReader) GetFundQueryHandler {
	return GetFundQueryHandler{funds: funds}
}

// Handle returns the active fund of the client, or its latest closed one.
// Movements are listed oldest first.
func (h GetFundQueryHandler) Handle(ctx context.Context, query GetFundQuery) (*GetFundQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	f, err := h.funds.GetByClient(ctx, query.ClientID())
	if err != nil {
		return nil, err
	}
	movements, err := h.funds.ListMovements(ctx, f.ID())
	if err != nil {
		return nil, err
	}

	resp := &GetFundQueryResponse{
		ID:        f.ID(),
		ClientID:  f.ClientID(),
		Balance:   f.Balance(),
		Active:    f.IsActive(),
		Version:   f.Version(),
		Movements: make([]MovementView, 0, len(movements)),
	}
	for _, m := range movements {
		resp.Movements = append(resp.Movements, MovementView{
			ID:            m.ID(),
			Kind:          m.Kind().String(),
			Amount:        m.Amount(),
			BalanceBefore: m.BalanceBefore(),
			BalanceAfter:  m.BalanceAfter(),
			OrderID:       m.OrderID(),
			Note:          m.Note(),
			CreatedAt:     m.CreatedAt(),
		})
	}
	return resp, nil
}

package api

import (
	"fmt"

	"tradedesk/internal/alerts"
	"tradedesk/internal/model"
)

// Summary renders the trade plan as the dashboard's one-line text summary.
func Summary(s model.TradeSetup) string {
	return fmt.Sprintf("Entry: %.2f EUR | SL: %.2f EUR | TP: %.2f EUR | R/R: %.2f",
		s.Entry, s.StopLoss, s.TakeProfit, s.RiskReward)
}

// AlertMessages renders the alert list, with a placeholder when empty.
func AlertMessages(as []model.Alert) []string {
	return alerts.Messages(as)
}

package amqp

import (
	"encoding/json"
	"time"
)

// LowBalanceAlertMessage notifies that a projected ending balance fell
// below the alert threshold on a day near today. Amounts travel as
// fixed-point strings so consumers never round them through floats.
type LowBalanceAlertMessage struct {
	RunID          string    `json:"run_id"`
	AccountName    string    `json:"account_name"`
	Date           string    `json:"date"`
	RunningBalance string    `json:"running_balance"`
	Threshold      string    `json:"threshold"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewLowBalanceAlertMessage(runID, accountName, date, runningBalance, threshold string) *LowBalanceAlertMessage {
	return &LowBalanceAlertMessage{
		RunID:          runID,
		AccountName:    accountName,
		Date:           date,
		RunningBalance: runningBalance,
		Threshold:      threshold,
		Timestamp:      time.Now(),
	}
}

func (m *LowBalanceAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LowBalanceAlertMessageFromJSON(data []byte) (*LowBalanceAlertMessage, error) {
	var msg LowBalanceAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// RunCompletedMessage summarizes one finished forecast run.
type RunCompletedMessage struct {
	RunID      string    `json:"run_id"`
	RunDate    string    `json:"run_date"`
	RowCount   int       `json:"row_count"`
	AlertCount int       `json:"alert_count"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewRunCompletedMessage(runID, runDate string, rowCount, alertCount int) *RunCompletedMessage {
	return &RunCompletedMessage{
		RunID:      runID,
		RunDate:    runDate,
		RowCount:   rowCount,
		AlertCount: alertCount,
		Timestamp:  time.Now(),
	}
}

func (m *RunCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RunCompletedMessageFromJSON(data []byte) (*RunCompletedMessage, error) {
	var msg RunCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

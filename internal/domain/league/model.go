package league

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
)

// League is a private fantasy cricket league run by a commissioner.
type League struct {
	ID                 string
	Name               string
	Season             string
	CommissionerUserID string
	Roster             roster.Config
	DoubleRoundRobin   bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Season == "" {
		return fmt.Errorf("league season is required")
	}
	if l.CommissionerUserID == "" {
		return fmt.Errorf("league commissioner is required")
	}
	if err := l.Roster.Validate(); err != nil {
		return err
	}

	return nil
}

func (l League) IsCommissioner(userID string) bool {
	return userID != "" && l.CommissionerUserID == userID
}

package service

import (
	"context"
	"fmt"

	"github.com/AccelByte/accelbyte-go-sdk/platform-sdk/pkg/platformclient/fulfillment"
	"github.com/AccelByte/accelbyte-go-sdk/platform-sdk/pkg/platformclientmodels"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/platform"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/social"
	"github.com/AccelByte/accelbyte-go-sdk/social-sdk/pkg/socialclient/user_statistic"
	"github.com/AccelByte/accelbyte-go-sdk/social-sdk/pkg/socialclientmodels"
	"github.com/sirupsen/logrus"
)

// PlatformConfig is shared by the AccelByte-backed services.
type PlatformConfig struct {
	Namespace string
}

// EntitlementService grants milestone rewards through platform fulfillment.
type EntitlementService struct {
	fulfillment *platform.FulfillmentService
	cfg         PlatformConfig
}

func NewEntitlementService(fulfillment *platform.FulfillmentService, cfg PlatformConfig) *EntitlementService {
	return &EntitlementService{fulfillment: fulfillment, cfg: cfg}
}

// GrantEntitlement fulfills quantity of itemID for the player, sourced as a reward.
// The SDK call does not take a context, so ctx only guards against
// starting a grant for a request that is already gone.
func (s *EntitlementService) GrantEntitlement(ctx context.Context, userID, itemID string, quantity int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	qty := int32(quantity)
	resp, err := s.fulfillment.FulfillItemShort(&fulfillment.FulfillItemParams{
		Namespace: s.cfg.Namespace,
		UserID:    userID,
		Body: &platformclientmodels.FulfillmentRequest{
			ItemID:   itemID,
			Quantity: &qty,
			Source:   platformclientmodels.FulfillmentRequestSourceREWARD,
		},
	})
	if err != nil {
		return fmt.Errorf("fulfill item %s for user %s: %w", itemID, userID, err)
	}
	if resp == nil {
		return fmt.Errorf("fulfill item %s for user %s: empty response", itemID, userID)
	}

	logrus.Debugf("fulfilled %d x %s for user %s", quantity, itemID, userID)
	return nil
}

// StatisticService reports milestone counters to the social statistic service.
type StatisticService struct {
	stats *social.UserStatisticService
	cfg   PlatformConfig
}

func NewStatisticService(stats *social.UserStatisticService, cfg PlatformConfig) *StatisticService {
	return &StatisticService{stats: stats, cfg: cfg}
}

// IncrementStat adds one to statCode for the player.
func (s *StatisticService) IncrementStat(ctx context.Context, userID, statCode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.stats.IncUserStatItemValueShort(&user_statistic.IncUserStatItemValueParams{
		Namespace: s.cfg.Namespace,
		UserID:    userID,
		StatCode:  statCode,
		Body:      &socialclientmodels.StatItemInc{Inc: 1},
	})
	if err != nil {
		return fmt.Errorf("increment stat %s for user %s: %w", statCode, userID, err)
	}

	logrus.Debugf("incremented stat %s for user %s", statCode, userID)
	return nil
}

package client

import (
	"context"

	"genz-ignite/internal/domain/policy"
	"genz-ignite/internal/domain/poll"
	"genz-ignite/internal/ledger"
)

// Shown when the API cannot be read or has nothing yet, so the page is
// never blank.
var (
	PlaceholderPolicies = []policy.Policy{
		{ID: 1, Title: "ซ่อมพัดลมอาคาร 5", Description: "ดำเนินการซ่อมพัดลมที่ชำรุด 12 ตัว", Category: "อาคารสถานที่", Status: policy.StatusInProgress, Progress: 60},
		{ID: 2, Title: "เพิ่มปลั๊กไฟโรงอาหาร", Description: "ติดตั้งจุดชาร์จไฟเพิ่ม 20 จุด", Category: "โครงสร้างพื้นฐาน", Status: policy.StatusCompleted, Progress: 100},
		{ID: 3, Title: "จัดงาน Sport Day 2024", Description: "เตรียมงานกีฬาสีประจำปี", Category: "กิจกรรม", Status: policy.StatusPending, Progress: 15},
	}

	PlaceholderPollOptions = []poll.Option{
		{ID: 1, OptionName: "วิชาการ", Votes: 12},
		{ID: 2, OptionName: "สถานที่", Votes: 25},
		{ID: 3, OptionName: "กิจกรรม", Votes: 18},
		{ID: 4, OptionName: "โปร่งใส", Votes: 40},
	}
)

// PoliciesOrPlaceholder reports placeholder=true when it had to fall back.
func (c *Client) PoliciesOrPlaceholder(ctx context.Context, f policy.Filter) (list []policy.Policy, placeholder bool) {
	list, err := c.ListPolicies(ctx, f)
	if err != nil {
		c.logger.Warn("policy list unavailable, showing placeholders", "err", err)
		return clonePolicies(), true
	}
	if len(list) == 0 && f == (policy.Filter{}) {
		return clonePolicies(), true
	}
	return list, false
}

func (c *Client) PollOptionsOrPlaceholder(ctx context.Context) (list []poll.Option, placeholder bool) {
	list, err := c.ListPollOptions(ctx)
	if err != nil {
		c.logger.Warn("poll options unavailable, showing placeholders", "err", err)
		return append([]poll.Option(nil), PlaceholderPollOptions...), true
	}
	if len(list) == 0 {
		return append([]poll.Option(nil), PlaceholderPollOptions...), true
	}
	return list, false
}

func clonePolicies() []policy.Policy {
	return append([]policy.Policy(nil), PlaceholderPolicies...)
}

func PolicyItems(list []policy.Policy) []ledger.Item {
	items := make([]ledger.Item, 0, len(list))
	for _, p := range list {
		items = append(items, ledger.Item{ID: p.ID, Label: p.Title, Category: ledger.CategoryPolicy, Votes: p.Votes})
	}
	return items
}

func PollItems(list []poll.Option) []ledger.Item {
	items := make([]ledger.Item, 0, len(list))
	for _, o := range list {
		items = append(items, ledger.Item{ID: o.ID, Label: o.OptionName, Category: ledger.CategoryPoll, Votes: o.Votes})
	}
	return items
}

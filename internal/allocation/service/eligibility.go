package service

import (
	"sort"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smallbiznis/voltra/internal/customer/domain"
)

// splitEligible partitions the verified customers of a feeder into those
// that will be billed and those excluded for an active vacation. Input may
// contain duplicates; each customer counts once. Output is ordered by ID so
// runs process customers deterministically.
func splitEligible(verified []customerdomain.Customer, onVacation map[snowflake.ID]struct{}) (eligible []customerdomain.Customer, excluded int) {
	seen := make(map[snowflake.ID]struct{}, len(verified))

	for _, c := range verified {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}

		if _, away := onVacation[c.ID]; away {
			excluded++
			continue
		}
		eligible = append(eligible, c)
	}

	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].ID < eligible[j].ID
	})

	return eligible, excluded
}

package core

import "fmt"

// ValidateCluster checks the construction invariants for a cluster:
// a non-empty member set and ascending member IDs.
func ValidateCluster(c *Cluster) error {
	if c.Size() == 0 {
		return fmt.Errorf("cluster %d: %w", c.ID, ErrEmptyCluster)
	}
	for i := 1; i < len(c.MemberIDs); i++ {
		if c.MemberIDs[i] <= c.MemberIDs[i-1] {
			return fmt.Errorf("cluster %d: member IDs must be ascending", c.ID)
		}
	}
	return nil
}

// ValidatePartition checks that clusters form a partition of exactly n units:
// dense IDs 0..k-1, no empty cluster, every unit claimed exactly once.
func ValidatePartition(clusters []*Cluster, n int) error {
	seen := make(map[int]bool, n)
	for i, c := range clusters {
		if c.ID != i {
			return fmt.Errorf("cluster IDs must be dense: position %d has ID %d", i, c.ID)
		}
		if err := ValidateCluster(c); err != nil {
			return err
		}
		for _, id := range c.MemberIDs {
			if id < 0 || id >= n {
				return fmt.Errorf("cluster %d: member ID %d out of range [0,%d)", c.ID, id, n)
			}
			if seen[id] {
				return fmt.Errorf("unit %d assigned to more than one cluster", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != n {
		return fmt.Errorf("partition covers %d of %d units", len(seen), n)
	}
	return nil
}

package game

import "fmt"

// Allocation splits a pool between attack and defend. Whatever is left is saved.
type Allocation struct {
	Attack int `json:"attack"`
	Defend int `json:"defend"`
}

func (a Allocation) Spent() int {
	return a.Attack + a.Defend
}

// Validate checks the allocation against the pool that produced it.
func (a Allocation) Validate(pool int) error {
	if a.Attack < 0 || a.Defend < 0 {
		return fmt.Errorf("negative allocation: attack %d, defend %d", a.Attack, a.Defend)
	}
	if a.Spent() > pool {
		return &AllocationOverflowError{Pool: pool, Attack: a.Attack, Defend: a.Defend}
	}
	return nil
}

func (a Allocation) String() string {
	return fmt.Sprintf("Attack: %d, Defend: %d", a.Attack, a.Defend)
}

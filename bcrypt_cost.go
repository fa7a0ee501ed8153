//go:build !race

package realworld

func passwordHashCost() int {
	return 14
}

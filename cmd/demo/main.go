package main

import (
	"fmt"
	"os"

	observatory "github.com/watchtower-labs/observatory"
)

func main() {
	observatory.Init()

	a := observatory.NewObservable(1)
	b := observatory.NewObservable(2)

	sum := observatory.NewDerivation(func() int {
		result := a.Read() + b.Read()
		fmt.Println("  [DERIVE] computing sum:", result)
		return result
	}).Track("sum")

	observatory.Effect(func() {
		fmt.Println("  [EFFECT] sum is:", sum.Read())
	})

	fmt.Println("\nUpdating a, then b...")
	a.Set(10)
	b.Set(20)

	fmt.Println("\nExpected: sum recomputes once per Set (12, then 30)")

	fmt.Println("\nDependency graph:")
	observatory.Dump(os.Stdout)
}

package main

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// ── Startup display helpers ────────────────────────────────────────

const lineWidth = 46

func printBanner() {
	fmt.Println()
	fmt.Println("\033[35;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[35;1m  │\033[0m             beatbound  v0.1.0             \033[35;1m│\033[0m")
	fmt.Println("\033[35;1m  │\033[0m          rhythm battle runtime            \033[35;1m│\033[0m")
	fmt.Println("\033[35;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	n := lineWidth - uniseg.StringWidth(title) - 1
	if n < 3 {
		n = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", n))
}

func printStat(label string, count int) {
	num := fmt.Sprintf("%d", count)
	dots := lineWidth - 4 - uniseg.StringWidth(label) - len(num)
	if dots < 3 {
		dots = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dots), num)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

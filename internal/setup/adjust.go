// Package setup drives the interactive adjustment of remaining
// balances: the operator can shrink per-pair inventory to match what
// is actually held, accounting for trades done on other exchanges or
// wallets. The ledger mutation itself lives in the ledger package;
// this is presentation only.
package setup

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/P0werNap/Kraken-PNL/internal/domain"
	"github.com/P0werNap/Kraken-PNL/internal/ledger"
	"github.com/P0werNap/Kraken-PNL/pkg/decimals"
)

var (
	special = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1)
)

// RunAdjustments asks whether remaining balances should be adjusted
// and, if so, lets the operator pick pairs and set target remaining
// volumes. Aborting the form at any point leaves the book untouched.
func RunAdjustments(book *ledger.Book) error {
	var confirm bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Adjust current balances?").
				Description("Shrink remaining inventory to account for trades done elsewhere.").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return errors.Wrap(err, "adjustment prompt")
	}
	if !confirm {
		return nil
	}

	// Only pairs that still hold inventory are adjustable.
	type item struct {
		pair      domain.Pair
		led       *ledger.Ledger
		remaining decimal.Decimal
	}
	var items []item
	for _, pair := range book.Pairs() {
		led, ok := book.Ledger(pair)
		if !ok {
			continue
		}
		vol, _ := led.Remaining()
		if vol.IsPositive() {
			items = append(items, item{pair: pair, led: led, remaining: vol})
		}
	}
	if len(items) == 0 {
		fmt.Println("Nothing to adjust (no remaining inventory from history).")
		return nil
	}

	options := make([]huh.Option[int], 0, len(items))
	for i, it := range items {
		label := fmt.Sprintf("%s  remaining=%s", it.pair.String(), it.remaining.String())
		options = append(options, huh.NewOption(label, i))
	}

	var selected []int
	fmt.Println(stepStyle.Render("ADJUST BALANCES"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Select assets to adjust").
				Options(options...).
				Value(&selected),
		),
	).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return errors.Wrap(err, "pair selection")
	}

	for _, idx := range selected {
		it := items[idx]
		targetStr := "0"
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(fmt.Sprintf("Target remaining volume for %s", it.pair.String())).
					Description(fmt.Sprintf("Current %s, usually 0 if fully sold elsewhere.", it.remaining.String())).
					Validate(validateTarget).
					Value(&targetStr),
			),
		).Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return errors.Wrap(err, "target input")
		}

		target, err := decimals.Parse(targetStr)
		if err != nil {
			// Validate already rejected this; be safe anyway.
			continue
		}
		removed := it.led.ShrinkToTarget(target)
		zap.L().Info("adjusted remaining balance",
			zap.String("pair", it.pair.String()),
			zap.String("target", target.String()),
			zap.String("removed", removed.String()))
	}
	return nil
}

// validateTarget rejects anything that is not a non-negative decimal
// before it can reach the ledger.
func validateTarget(s string) error {
	target, err := decimals.Parse(s)
	if err != nil {
		return errors.New("enter a valid number (e.g. 0 or 0.123456)")
	}
	if target.IsNegative() {
		return errors.New("target cannot be negative")
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lp_bot/internal/helper"
	"lp_bot/internal/models"
	"lp_bot/internal/monitor"
	"lp_bot/internal/positions"
	"lp_bot/pkg/logger"
)

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID
	// Single-owner bot: ignore strangers when an owner chat is set.
	if t.cfg.Telegram.ChatID != 0 && chatID != t.cfg.Telegram.ChatID {
		return
	}

	if !msg.IsCommand() {
		if t.popAwait(chatID) == awaitBulkInput {
			t.handleBulkInput(chatID, msg.Text)
		}
		return
	}
	t.clearAwait(chatID)

	args := strings.Fields(msg.CommandArguments())
	switch msg.Command() {
	case "start", "help":
		t.reply(chatID, helpText)
	case "positions", "pos":
		go t.handlePositions(ctx, chatID, listAll)
	case "out_of_range":
		go t.handlePositions(ctx, chatID, listOutOfRange)
	case "market":
		if len(args) < 1 {
			t.reply(chatID, "Usage: /market <slug-or-url>")
			return
		}
		go t.handleMarket(ctx, chatID, args[0])
	case "add_position":
		t.handleAddPosition(chatID, args)
	case "edit_position":
		t.handleEditPosition(chatID, args)
	case "bulk_add":
		t.setAwait(chatID, awaitBulkInput)
		t.reply(chatID,
			"Send positions in the next message, one per line, in this format:\n"+
				"<slug-or-url> <YES/NO> <price>\n\n"+
				"Example:\n"+
				"https://polymarket.com/event/.../market1 YES 0.75\n"+
				"https://polymarket.com/event/.../market2 NO 0.43")
	case "remove_position":
		t.handleRemovePosition(chatID, args)
	case "scan":
		go t.handleScan(ctx, chatID)
	case "wallet":
		go t.handleWallet(ctx, chatID, args)
	case "set_threshold":
		t.handleSetThreshold(chatID, args)
	case "set_interval":
		t.handleSetInterval(chatID, args)
	default:
		t.reply(chatID, "Unknown command. Try /help.")
	}
}

type listMode int

const (
	listAll listMode = iota
	listOutOfRange
)

// evaluateNow takes a fresh snapshot of the given positions and returns
// their ordered rows, without touching the monitor's alert state.
func (t *Telegram) evaluateNow(ctx context.Context, pos []models.Position) []models.MonitorRow {
	cfg := monitor.DefaultConfig()
	cfg.ThresholdCents = t.st.Get().AlertThresholdCents
	snap := t.snap.Take(ctx, pos)
	rows, _, _ := monitor.Evaluate(pos, snap, nil, cfg)
	return rows
}

func (t *Telegram) handlePositions(ctx context.Context, chatID int64, mode listMode) {
	pos := t.book.List()
	if len(pos) == 0 {
		t.reply(chatID, "No positions saved.")
		return
	}
	rows := t.evaluateNow(ctx, pos)

	header := "<b>Current positions</b>\n(sorted by risk — closest & thinnest first):"
	if mode == listOutOfRange {
		header = "<b>OUT OF RANGE positions</b>\n(distance ≥ 5¢; closest & thinnest first):"
		filtered := rows[:0]
		for _, r := range rows {
			if !r.Unresolved && r.OutOfRange {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
		if len(rows) == 0 {
			t.reply(chatID, "No OUT OF RANGE positions (distance ≥ 5¢).")
			return
		}
	}
	t.sendBlocks(chatID, header, formatMonitorRows(rows))
}

func (t *Telegram) handleMarket(ctx context.Context, chatID int64, target string) {
	slug := helper.NormalizeSlug(target)
	var matched []models.Position
	for _, p := range t.book.List() {
		if helper.NormalizeSlug(p.MarketSlug) == slug {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		t.reply(chatID, "No positions found for that market. "+
			"Make sure you used the slug or URL of a market you have saved.")
		return
	}
	rows := t.evaluateNow(ctx, matched)

	title := rows[0].Question
	if title == "" {
		title = slug
	}
	header := fmt.Sprintf("<b>Positions for market</b>\n%s\n(sorted by risk — closest & thinnest first):",
		helper.Truncate(title, 120))
	t.sendBlocks(chatID, header, formatMonitorRows(rows))
}

func (t *Telegram) handleAddPosition(chatID int64, args []string) {
	if len(args) < 3 {
		t.reply(chatID, "Usage: /add_position <slug> <YES/NO> <price> [notes]")
		return
	}
	side, err := models.ParseSide(args[1])
	if err != nil {
		t.reply(chatID, "Side must be YES or NO. Usage: /add_position <slug> <YES/NO> <price>")
		return
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		t.reply(chatID, "Invalid price. Usage: /add_position <slug> <YES/NO> <price> [notes]")
		return
	}

	updated, oldPrice, err := t.book.Add(args[0], side, price)
	switch {
	case err != nil:
		t.reply(chatID, "Could not add position: "+err.Error())
	case updated:
		t.reply(chatID, fmt.Sprintf(
			"Updated existing position on this market/side.\n%s on %s\nOld price: %.3f\nNew price: %.3f",
			side, args[0], oldPrice, price))
	default:
		t.reply(chatID, fmt.Sprintf("Added position: %s @ %.3f on %s", side, price, args[0]))
	}
}

func (t *Telegram) handleEditPosition(chatID int64, args []string) {
	if len(args) < 2 {
		t.reply(chatID, "Usage: /edit_position <index> <new_price>")
		return
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		t.reply(chatID, "Index must be a number. Usage: /edit_position <index> <new_price>")
		return
	}
	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		t.reply(chatID, "Invalid price. Usage: /edit_position <index> <new_price>")
		return
	}
	pos, oldPrice, err := t.book.Edit(idx, price)
	if err != nil {
		if errors.Is(err, positions.ErrIndexOutOfRange) {
			t.reply(chatID, fmt.Sprintf(
				"Index out of range. You currently have %d %s. Use /positions to see valid indices.",
				t.book.Len(), plural(t.book.Len(), "position", "positions")))
			return
		}
		t.reply(chatID, "Could not edit position: "+err.Error())
		return
	}
	t.reply(chatID, fmt.Sprintf("Updated position %d: %s on %s\nOld price: %.3f\nNew price: %.3f",
		idx, pos.Side, pos.MarketSlug, oldPrice, price))
}

func (t *Telegram) handleRemovePosition(chatID int64, args []string) {
	if len(args) < 1 {
		t.reply(chatID, "Usage: /remove_position <index> [index2 index3 ...]")
		return
	}
	indices, badTokens := parseIndices(args)
	if len(indices) == 0 {
		t.reply(chatID, "No valid indices provided. Usage: /remove_position <index> [index2 index3 ...]")
		return
	}
	removed, ignored, err := t.book.Remove(indices...)
	if err != nil {
		t.reply(chatID, fmt.Sprintf(
			"All indices out of range. You currently have %d %s. Use /positions to see valid indices.",
			t.book.Len(), plural(t.book.Len(), "position", "positions")))
		return
	}

	lines := []string{"Removed position(s):"}
	for _, r := range removed {
		lines = append(lines, fmt.Sprintf("%s @ %.3f on %s", r.Side, r.LimitPrice, r.MarketSlug))
	}
	if len(ignored) > 0 {
		lines = append(lines, "Ignored out-of-range index/indices: "+joinInts(ignored))
	}
	if len(badTokens) > 0 {
		lines = append(lines, "Ignored non-numeric token(s): "+strings.Join(badTokens, ", "))
	}
	t.reply(chatID, strings.Join(lines, "\n"))
}

func (t *Telegram) handleBulkInput(chatID int64, text string) {
	res, err := t.book.ParseBulk(text)
	if err != nil {
		t.reply(chatID, "Bulk add failed: "+err.Error())
		return
	}
	t.reply(chatID, fmt.Sprintf("Bulk add done: %d added, %d updated, %d skipped.",
		res.Added, res.Updated, res.Skipped))
}

func (t *Telegram) handleScan(ctx context.Context, chatID int64) {
	t.reply(chatID, "Scanning markets, this can take a minute...")
	res, err := t.scanner.Scan(ctx)
	if err != nil {
		logger.Error("scan: %v", err)
		t.reply(chatID, "Scan failed: "+err.Error())
		return
	}
	t.replyHTML(chatID, formatScanResult(res))
}

func (t *Telegram) handleWallet(ctx context.Context, chatID int64, args []string) {
	address := t.cfg.WalletAddress
	if len(args) > 0 {
		address = args[0]
	}
	if address == "" {
		t.reply(chatID, "No wallet address configured. Usage: /wallet <address>")
		return
	}
	rows, err := t.data.UserPositions(ctx, address)
	if err != nil {
		logger.Error("wallet positions: %v", err)
		t.reply(chatID, "Could not fetch wallet positions: "+err.Error())
		return
	}
	if len(rows) == 0 {
		t.reply(chatID, "No open positions for that address.")
		return
	}
	header := fmt.Sprintf("<b>Open positions for %s</b>", helper.Truncate(address, 12))
	t.sendBlocks(chatID, header, formatWalletRows(rows))
}

func (t *Telegram) handleSetThreshold(chatID int64, args []string) {
	if len(args) < 1 {
		t.reply(chatID, fmt.Sprintf("Alert threshold is %.1f¢. Usage: /set_threshold <cents>",
			t.st.Get().AlertThresholdCents))
		return
	}
	cents, err := strconv.ParseFloat(args[0], 64)
	if err != nil || cents <= 0 {
		t.reply(chatID, "Threshold must be a positive number of cents.")
		return
	}
	if err := t.st.SetThreshold(cents); err != nil {
		t.reply(chatID, "Could not save threshold: "+err.Error())
		return
	}
	t.reply(chatID, fmt.Sprintf("Alert threshold set to %.1f¢.", cents))
}

func (t *Telegram) handleSetInterval(chatID int64, args []string) {
	if len(args) < 1 {
		t.reply(chatID, fmt.Sprintf("Poll interval is %ds. Usage: /set_interval <seconds>",
			t.st.Get().PollIntervalSeconds))
		return
	}
	seconds, err := strconv.Atoi(args[0])
	if err != nil || seconds < 5 {
		t.reply(chatID, "Interval must be at least 5 seconds.")
		return
	}
	if err := t.st.SetInterval(seconds); err != nil {
		t.reply(chatID, "Could not save interval: "+err.Error())
		return
	}
	t.reply(chatID, fmt.Sprintf("Poll interval set to %ds.", seconds))
}

const helpText = "Commands:\n" +
	"/positions — list current positions\n" +
	"/out_of_range — list only OUT OF RANGE positions (distance ≥ 5¢)\n" +
	"/market <slug-or-url> — show only positions for a specific market\n" +
	"/add_position <slug> <YES/NO> <price> [notes]\n" +
	"/edit_position <index> <new_price> — edit price of an existing position\n" +
	"/bulk_add — add many positions; next message: one '<slug> <YES/NO> <price>' per line\n" +
	"/remove_position <index> — remove by index from /positions\n" +
	"/scan — rank low-risk LP reward markets\n" +
	"/wallet [address] — show on-chain positions for a wallet (read-only)\n" +
	"/set_threshold <cents> — alert distance threshold\n" +
	"/set_interval <seconds> — monitor poll interval\n"

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/eocodev/reviewstation/internal/engine"
	"github.com/eocodev/reviewstation/internal/model"
	"github.com/eocodev/reviewstation/internal/session"
)

// ReviewPrompter drives the interactive per-transaction receipt selection.
// It walks the ledger from the session cursor, offers the engine's ranked
// candidates for each transaction, and records picks into the session's
// selection.
type ReviewPrompter struct {
	reader *LineReader
	writer io.Writer
}

// NewReviewPrompter creates a prompter over the given streams. Nil streams
// default to stdin/stdout.
func NewReviewPrompter(reader io.Reader, writer io.Writer) *ReviewPrompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &ReviewPrompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// Run reviews every transaction from the session cursor onward. It mutates
// the session in place; the caller persists it. Quitting early is not an
// error.
func (p *ReviewPrompter) Run(ctx context.Context, transactions []model.Transaction, receipts []model.Receipt, batch *engine.BatchReport, sess *session.Session) error {
	if len(transactions) == 0 {
		return fmt.Errorf("no transactions to review")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if sess.Cursor >= len(transactions) {
			sess.Cursor = len(transactions) - 1
		}
		tx := transactions[sess.Cursor]

		p.printTransaction(tx, len(transactions), sess)
		candidates := batch.CandidatesFor(tx.Index)
		p.printCandidates(candidates)
		p.printf("%s\n", SubtleStyle.Render(
			"[number] match & next   [m] manual pick   [u] unmatch   [s] skip   [r] reset   [q] quit"))

		choice, err := p.readChoice(ctx)
		if err != nil {
			return err
		}

		switch {
		case choice == "q":
			return nil

		case choice == "s":
			if sess.Cursor == len(transactions)-1 {
				p.printf("%s\n", FormatSuccess("Reached the last transaction."))
				return nil
			}
			sess.Advance(len(transactions))

		case choice == "r":
			confirmed, err := p.confirm(ctx, "Reset all review progress?")
			if err != nil {
				return err
			}
			if confirmed {
				sess.Reset()
				p.printf("%s\n", FormatSuccess("Progress reset."))
			}

		case choice == "u":
			sess.Selection.Unselect(tx.Index)
			p.printf("%s\n", FormatSuccess("Selection cleared for this transaction."))

		case choice == "m":
			name, err := p.pickReceipt(ctx, receipts)
			if err != nil {
				return err
			}
			if name != "" && p.selectAndAdvance(sess, tx.Index, name, len(transactions)) {
				return nil
			}

		default:
			n, convErr := strconv.Atoi(choice)
			if convErr != nil || n < 1 || n > len(candidates) {
				p.printf("%s\n", FormatError("Enter a candidate number or one of the listed commands."))
				continue
			}
			if p.selectAndAdvance(sess, tx.Index, candidates[n-1].ReceiptName, len(transactions)) {
				return nil
			}
		}
	}
}

// selectAndAdvance records the pick and moves the cursor; it reports true
// when the last transaction has been reviewed.
func (p *ReviewPrompter) selectAndAdvance(sess *session.Session, txIndex int, name string, total int) bool {
	sess.Selection.Select(txIndex, name)
	p.printf("%s\n", FormatSuccess(fmt.Sprintf("Matched %s", name)))
	if sess.Cursor == total-1 {
		p.printf("%s\n", FormatSuccess("Reached the last transaction."))
		return true
	}
	sess.Advance(total)
	return false
}

func (p *ReviewPrompter) printTransaction(tx model.Transaction, total int, sess *session.Session) {
	lines := []string{
		fmt.Sprintf("Vendor: %s", tx.DisplayVendor()),
		fmt.Sprintf("Date:   %s", tx.DisplayDate()),
		fmt.Sprintf("Amount: $%s", tx.AmountKey()),
	}
	if name, ok := sess.Selection.Receipt(tx.Index); ok {
		lines = append(lines, SuccessStyle.Render(fmt.Sprintf("Matched to: %s", name)))
	}

	title := fmt.Sprintf("Transaction %d of %d", sess.Cursor+1, total)
	p.printf("\n%s\n", RenderBox(title, strings.Join(lines, "\n")))
}

func (p *ReviewPrompter) printCandidates(candidates []model.MatchCandidate) {
	if len(candidates) == 0 {
		p.printf("%s\n", WarningStyle.Render("No candidate receipts for this transaction."))
		return
	}

	for i, c := range candidates {
		line := fmt.Sprintf("  [%d] %s  (confidence %.2f, %s)", i+1, c.ReceiptName, c.Confidence, c.Status)
		if c.Status == model.StatusConfident {
			line = SuccessStyle.Render(line)
		}
		p.printf("%s\n", line)
	}
}

// pickReceipt lets the reviewer choose any bundle receipt by number,
// mirroring the original selectbox of every document.
func (p *ReviewPrompter) pickReceipt(ctx context.Context, receipts []model.Receipt) (string, error) {
	names := make([]string, len(receipts))
	for i, r := range receipts {
		names[i] = r.Name
	}
	sort.Strings(names)

	for i, name := range names {
		p.printf("  [%d] %s\n", i+1, name)
	}
	p.printf("%s", FormatPrompt("Receipt number (blank to cancel)"))

	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if line == "" {
		return "", nil
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(names) {
		p.printf("%s\n", FormatError("No such receipt."))
		return "", nil
	}
	return names[n-1], nil
}

func (p *ReviewPrompter) confirm(ctx context.Context, question string) (bool, error) {
	p.printf("%s", FormatPrompt(question+" [y/N]"))
	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "y") || strings.EqualFold(line, "yes"), nil
}

func (p *ReviewPrompter) readChoice(ctx context.Context) (string, error) {
	p.printf("%s", FormatPrompt("Choice"))
	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

func (p *ReviewPrompter) printf(format string, args ...any) {
	fmt.Fprintf(p.writer, format, args...)
}

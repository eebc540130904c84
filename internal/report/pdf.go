// Package report renders the monthly closing report as a PDF document.
package report

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/services"
)

// formatBRL formats an amount as Brazilian currency: R$ 1.234,56.
func formatBRL(amount float64) string {
	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")

	intPart := parts[0]
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteRune('.')
		}
		b.WriteRune(digit)
	}
	return "R$ " + sign + b.String() + "," + parts[1]
}

// MonthlyReport renders the monthly summary as a PDF and returns its bytes.
func MonthlyReport(summary *services.MonthlySummary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		WithBottomMargin(10).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Relatório Mensal",
			props.Text{
				Top:   3,
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Center,
			}),
	)
	m.AddRow(10,
		text.NewCol(12, summary.MonthKey,
			props.Text{
				Size:  12,
				Align: align.Center,
			}),
	)
	m.AddRow(5)

	addSummarySection(m, summary)
	addBalancesSection(m, summary)
	addLoansSection(m, summary)

	doc, err := m.Generate()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return doc.GetBytes(), nil
}

func summaryRow(m core.Maroto, label, value string) {
	m.AddRow(8,
		col.New(6).Add(
			text.New(label, props.Text{
				Size:  10,
				Style: fontstyle.Bold,
			}),
		),
		col.New(6).Add(
			text.New(value, props.Text{
				Size:  10,
				Align: align.Right,
			}),
		),
	)
}

func addSummarySection(m core.Maroto, summary *services.MonthlySummary) {
	summaryRow(m, "Receitas do mês", formatBRL(summary.TotalIncome))
	summaryRow(m, "Total alocado", formatBRL(summary.TotalAllocated))
	summaryRow(m, "Saldo disponível", formatBRL(summary.TotalCurrent))
	summaryRow(m, "Reservas", formatBRL(summary.ReservesBalance))
	m.AddRow(2, line.NewCol(12))
	m.AddRow(3)
}

func addBalancesSection(m core.Maroto, summary *services.MonthlySummary) {
	m.AddRow(10,
		text.NewCol(12, "Saldos por subconta",
			props.Text{
				Top:   3,
				Size:  12,
				Style: fontstyle.Bold,
			}),
	)

	if len(summary.Balances) == 0 {
		m.AddRow(7,
			text.NewCol(12, "Nenhuma subconta com alocação neste mês.",
				props.Text{Size: 9}),
		)
		m.AddRow(3)
		return
	}

	m.AddRow(8,
		text.NewCol(3, "Conta", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(3, "Subconta", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, "Alocado", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Gasto", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Saldo", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))

	for _, b := range summary.Balances {
		m.AddRow(7,
			text.NewCol(3, b.AccountName, props.Text{Size: 9}),
			text.NewCol(3, b.SubAccount, props.Text{Size: 9}),
			text.NewCol(2, formatBRL(b.Initial), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatBRL(b.Initial-b.Current), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatBRL(b.Current), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(2, line.NewCol(12))
	m.AddRow(3)
}

func addLoansSection(m core.Maroto, summary *services.MonthlySummary) {
	m.AddRow(10,
		text.NewCol(12, "Empréstimos quitados no mês",
			props.Text{
				Top:   3,
				Size:  12,
				Style: fontstyle.Bold,
			}),
	)

	if len(summary.SettledLoans) == 0 {
		m.AddRow(7,
			text.NewCol(12, "Nenhum empréstimo com parcelas quitadas neste mês.",
				props.Text{Size: 9}),
		)
		return
	}

	m.AddRow(8,
		text.NewCol(3, "Instituição", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, "Contrato", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, "Tipo", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(1, "Parcelas", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Valor Parcela", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Economia", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))

	for _, loan := range summary.SettledLoans {
		m.AddRow(7,
			text.NewCol(3, loan.Institution, props.Text{Size: 9}),
			text.NewCol(2, loan.Contract, props.Text{Size: 9}),
			text.NewCol(2, loan.Type, props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%d", loan.InstallmentCount), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatBRL(loan.InstallmentAmount), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatBRL(loan.Savings), props.Text{Size: 9, Align: align.Right}),
		)
	}
}

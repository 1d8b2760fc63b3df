package rules

// DefaultSet returns the built-in classification rule set for Australian
// financial documents. Rule order matters: when two types tie on score the
// earlier entry wins, so more specific statement types come first and the
// broad summary types last.
func DefaultSet() Set {
	return Set{
		Types: []TypeRule{
			{
				Type:  "DividendStatement",
				Must:  []string{"Dividend statement"},
				Hints: []string{"Record Date", "Payment Date", "DRP", "Dividend Reinvestment", "Dividend"},
			},
			{
				Type: "DistributionStatement",
				Must: []string{"Distribution statement", "Distribution Advice", "Distribution Payment"},
				Hints: []string{
					"Distribution", "Payment date", "Record date", "ETF", "Managed Fund",
					"Distribution Rate", "Holding Balance", "Gross Distribution", "Net Distribution",
				},
				Exclude: []string{
					"CONFIRMATION", "CONTRACT NOTE", "BUY", "SELL", "We have bought",
					"Has bought", "Transaction Type: BUY", "Trade", "Brokerage", "Consideration",
				},
			},
			{
				Type: "CallAndDistributionStatement",
				Must: []string{
					"Call and Distribution Statement", "Call & Distribution Statement",
					"Dist and Capital Call", "Distribution and Capital Call",
				},
				Hints: []string{
					"Capital Call", "Call", "Distribution", "Net Cash Distribution",
					"Notional Capital Call", "Called Capital", "Uncalled Committed Capital",
					"Dist & Capital Call",
				},
			},
			{
				Type:  "PeriodicStatement",
				Must:  []string{"Periodic Statement"},
				Hints: []string{"Transactions", "Unit Balance", "Redemption Price", "Buy-Sell Spread", "Fees and Costs"},
			},
			{
				Type:  "BankStatement",
				Must:  []string{"Bank Statement"},
				Hints: []string{"BSB", "Bank Account", "Banking", "Account Balance", "Bank Transaction", "Bank Statement"},
				Exclude: []string{
					"CONFIRMATION", "CONTRACT NOTE", "BUY", "SELL", "Trade", "Brokerage",
					"Consideration", "NAV", "Net Asset Value", "Fund Performance", "Shareholder",
					"CHESS", "HIN", "SRN", "Portfolio", "Holdings",
				},
			},
			{
				Type: "BuyContract",
				Must: []string{"CONFIRMATION", "BUY CONFIRMATION", "CONTRACT NOTE"},
				Hints: []string{
					"We have bought", "Transaction Type: BUY", "Trade Confirmation", "Purchase",
					"Acquisition", "Buy Order", "Consideration", "Brokerage", "Trade Date",
					"Settlement Date", "Confirmation Date", "CONFIRMATION",
				},
				RequireAny: []string{"BUY", "We have bought", "Transaction Type: BUY"},
			},
			{
				Type: "SellContract",
				Must: []string{"SELL"},
				Hints: []string{
					"Sell Confirmation", "Trade Confirmation", "Sale", "Disposal", "Sell Order",
					"CONTRACT NOTE", "We have sold", "We confirm the following transaction",
					"Transaction Type: SELL",
				},
			},
			{
				Type: "HoldingStatement",
				Must: []string{
					"CHESS", "Issuer Sponsored", "SRN", "HIN", "NAV statement",
					"Fund Performance", "Shareholder Value", "Shareholder Activity",
				},
				Hints: []string{
					"Holder Identification Number", "Statement Date", "Holdings", "Portfolio",
					"Net Asset Value", "NAV per Share", "Shareholder", "Fund Performance",
					"Opening Balance", "Closing Balance",
				},
				Exclude: []string{
					"CONFIRMATION", "CONTRACT NOTE", "BUY", "SELL", "Trade", "Brokerage",
					"Consideration", "We have bought", "We have sold",
				},
			},
			{
				Type: "TaxStatement",
				Must: []string{
					"Annual Tax Statement", "Tax Summary", "AMMA", "AMIT",
					"NAV & Taxation Statement", "NAV and Taxation Statement",
					"Taxation Statement", "NAV and Taxation",
				},
				Hints: []string{"Tax Year", "Assessable Income", "Tax Return", "Taxation", "Tax Withheld", "Tax Payable"},
			},
			{
				Type: "NetAssetSummaryStatement",
				Must: []string{"Net Asset Summary", "NAV Summary", "NAV statement", "Net Asset Value Summary"},
				Hints: []string{
					"Net Asset Value", "NAV", "Unit Price", "Asset Summary", "Asset Value",
					"Unit Balance", "Total Assets", "Total Liabilities", "NAV per Share",
					"Fund Performance", "Shareholder Value",
				},
				Exclude: []string{
					"CONFIRMATION", "CONTRACT NOTE", "BUY", "SELL", "Trade", "Brokerage",
					"Consideration", "Taxation", "Tax Year", "Tax Return",
				},
			},
		},
		Issuers: []string{
			"Computershare",
			"Link Market Services",
			"Automic",
			"BoardRoom",
			"CommSec",
			"CMC Markets",
			"nabtrade",
			"Bell Potter",
			"Vanguard",
			"iShares",
			"BlackRock",
			"Betashares",
			"Magellan",
		},
		Aliases: []IssuerAlias{
			{Alias: "Computershare Limited", Canonical: "Computershare"},
			{Alias: "Link Market Services Limited", Canonical: "Link Market Services"},
			{Alias: "CMC Markets Stockbroking", Canonical: "CMC Markets"},
			{Alias: "Bell Potter Securities", Canonical: "Bell Potter"},
			{Alias: "BlackRock Investment Management", Canonical: "BlackRock"},
			{Alias: "iShares by BlackRock", Canonical: "iShares"},
		},
		DatePriorities: map[string][]string{
			"DividendStatement":            {"Payment Date", "Record Date", "Statement Date", "Date"},
			"DistributionStatement":        {"Payment Date", "Record Date", "Distribution Date", "Statement Date", "Date"},
			"CallAndDistributionStatement": {"Statement Date", "Date"},
			"PeriodicStatement":            {"Statement Date", "Period End", "Date"},
			"BankStatement":                {"Statement Date", "Period End", "Date"},
			"BuyContract":                  {"Confirmation Date", "Transaction Date", "Trade Date", "Settlement Date", "As at Date", "Date"},
			"SellContract":                 {"Confirmation Date", "Transaction Date", "Trade Date", "Settlement Date", "As at Date", "Date"},
			"HoldingStatement":             {"Statement Date", "Date"},
			"TaxStatement":                 {"Statement Date", "Tax Year", "Date"},
			"NetAssetSummaryStatement":     {"Statement Date", "As at Date", "Date"},
		},
		AccountPatterns: []string{
			`(?i)(?:HIN|SRN|Account|Holder(?:\s+ID)?)[:\s]*([A-Z0-9-]{6,})`,
			`(?i)(?:Account\s+Number|Account\s+No\.?)[:\s]*([A-Z0-9-]{6,})`,
			`(?i)Account(?:\s+(?:Number|No\.?))?[:\s]*[*xX•]+[\s-]*([0-9]{4})\b`,
		},
	}
}

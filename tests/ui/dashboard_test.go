package tests

import (
	"strings"
	"testing"

	"github.com/chromedp/chromedp"

	"github.com/sanglocn/us-daily/tests/common"
)

func TestUIDashboardNoJSErrors(t *testing.T) {
	base := portalURL(t)
	ctx, cancel := newBrowser(t)
	defer cancel()

	errs := common.NewJSErrorCollector(ctx)
	if err := common.NavigateAndWait(ctx, base+"/", 0); err != nil {
		t.Fatal(err)
	}

	if jsErrs := errs.Errors(); len(jsErrs) > 0 {
		t.Errorf("JS errors on dashboard:\n  %s", strings.Join(jsErrs, "\n  "))
	}
}

func TestUIDashboardRenders(t *testing.T) {
	base := portalURL(t)
	ctx, cancel := newBrowser(t)
	defer cancel()

	var title string
	err := chromedp.Run(ctx,
		chromedp.Navigate(base+"/"),
		chromedp.WaitVisible("section.group", chromedp.ByQuery),
		chromedp.Title(&title),
	)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(title, "Daily Snapshot") {
		t.Errorf("title = %q, want contains Daily Snapshot", title)
	}

	sections, err := common.ElementCount(ctx, "section.group")
	if err != nil {
		t.Fatal(err)
	}
	if sections < 2 {
		t.Errorf("group sections = %d, want >= 2 (Market + Leader fixtures)", sections)
	}

	sparks, err := common.ElementCount(ctx, "td.trend svg")
	if err != nil {
		t.Fatal(err)
	}
	if sparks == 0 {
		t.Error("expected at least one trend sparkline")
	}
}

func TestUIDashboardGroupAnchors(t *testing.T) {
	base := portalURL(t)
	ctx, cancel := newBrowser(t)
	defer cancel()

	if err := common.NavigateAndWait(ctx, base+"/", 0); err != nil {
		t.Fatal(err)
	}

	// Every group gets a nav link; only non-empty groups get a section.
	for _, sel := range []string{"#market", "nav a[href='#market']", "nav a[href='#crypto']"} {
		exists, err := common.Exists(ctx, sel)
		if err != nil {
			t.Fatal(err)
		}
		if !exists {
			t.Errorf("expected %s in the dashboard", sel)
		}
	}

	empty, err := common.Exists(ctx, "section#crypto")
	if err != nil {
		t.Fatal(err)
	}
	if empty {
		t.Error("crypto has no fixture rows and should have no section")
	}
}

func TestUIDashboardFilterForm(t *testing.T) {
	base := portalURL(t)
	ctx, cancel := newBrowser(t)
	defer cancel()

	// stage2=1 keeps only stage-2 tickers; the XLE fixture is stage 4.
	if err := common.NavigateAndWait(ctx, base+"/?stage2=1", 0); err != nil {
		t.Fatal(err)
	}

	checked, err := common.Exists(ctx, "input[name='stage2']:checked")
	if err != nil {
		t.Fatal(err)
	}
	if !checked {
		t.Error("stage2 checkbox should reflect the query parameter")
	}

	found, body, err := common.TextContains(ctx, "main", "XLE")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Errorf("XLE should be filtered out, main content: %s", body[:min(len(body), 200)])
	}
}

func TestUIDashboardStyledCells(t *testing.T) {
	base := portalURL(t)
	ctx, cancel := newBrowser(t)
	defer cancel()

	if err := common.NavigateAndWait(ctx, base+"/", 0); err != nil {
		t.Fatal(err)
	}

	// NVDA's 95% one-month rank renders with the strong style
	strong, err := common.ElementCount(ctx, "td.strong")
	if err != nil {
		t.Fatal(err)
	}
	if strong == 0 {
		t.Error("expected at least one strong-styled cell")
	}

	negative, err := common.ElementCount(ctx, "td.negative")
	if err != nil {
		t.Fatal(err)
	}
	if negative == 0 {
		t.Error("expected at least one negative-styled cell for XLE's losses")
	}
}

func TestUIDashboardCSSLoaded(t *testing.T) {
	base := portalURL(t)
	ctx, cancel := newBrowser(t)
	defer cancel()

	var display string
	err := chromedp.Run(ctx,
		chromedp.Navigate(base+"/"),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.Evaluate(`getComputedStyle(document.querySelector('.layout')).display`, &display),
	)
	if err != nil {
		t.Fatal(err)
	}
	if display != "flex" {
		t.Errorf("layout display = %q, want flex (stylesheet not applied?)", display)
	}
}

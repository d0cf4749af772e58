package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signup_e2e/domain/entities"
	"signup_e2e/infrastructure/browser/browsertest"
)

func newElementActions(page *browsertest.Page) *ElementActions {
	return NewElementActions(page, entities.DefaultTimeouts(), quietLogger())
}

func TestClick_RetryMakesThreeAttemptsAndSurfacesFinalError(t *testing.T) {
	page := browsertest.NewPage()
	first := errors.New("blocked by overlay")
	last := browsertest.TimeoutError("still blocked")
	button := browsertest.NewLocator("submit")
	button.ClickErrs = []error{first, first, last}

	err := newElementActions(page).Click(context.Background(), button, ClickOptions{Retry: true})

	require.Error(t, err)
	assert.ErrorIs(t, err, last)
	assert.NotErrorIs(t, err, first)
	assert.Equal(t, 3, button.CallCount("click"))
	assert.Equal(t, []float64{1000, 1000}, page.Sleeps)

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, "click", actionErr.Op)
	assert.Equal(t, "submit", actionErr.Target)
	assert.True(t, actionErr.Timeout())
}

func TestClick_WithoutRetryMakesOneAttempt(t *testing.T) {
	page := browsertest.NewPage()
	button := browsertest.NewLocator("submit")
	button.ClickErrs = []error{errors.New("detached")}

	err := newElementActions(page).Click(context.Background(), button)

	require.Error(t, err)
	assert.Equal(t, 1, button.CallCount("click"))
	assert.Empty(t, page.Sleeps)
}

func TestClick_RetryStopsOnSuccess(t *testing.T) {
	page := browsertest.NewPage()
	button := browsertest.NewLocator("submit")
	button.ClickErrs = []error{errors.New("not ready"), nil}

	err := newElementActions(page).Click(context.Background(), button, ClickOptions{Retry: true})

	require.NoError(t, err)
	assert.Equal(t, 2, button.CallCount("click"))
	assert.Len(t, page.Sleeps, 1)
}

func TestClick_RetryHonoursCancelledContext(t *testing.T) {
	page := browsertest.NewPage()
	button := browsertest.NewLocator("submit")
	button.ClickErrs = []error{errors.New("not ready")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newElementActions(page).Click(ctx, button, ClickOptions{Retry: true})

	require.Error(t, err)
	assert.Equal(t, 1, button.CallCount("click"))
}

func TestClick_PassesForceAndTimeout(t *testing.T) {
	page := browsertest.NewPage()
	button := browsertest.NewLocator("submit")

	err := newElementActions(page).Click(context.Background(), button, ClickOptions{Force: true, Timeout: 2 * time.Second})

	require.NoError(t, err)
	require.Len(t, button.Clicks, 1)
	assert.True(t, *button.Clicks[0].Force)
	assert.Equal(t, 2000.0, *button.Clicks[0].Timeout)
}

func TestClick_DefaultsToMediumTimeout(t *testing.T) {
	button := browsertest.NewLocator("submit")

	require.NoError(t, newElementActions(browsertest.NewPage()).Click(context.Background(), button))

	assert.Equal(t, 10000.0, *button.Clicks[0].Timeout)
}

func TestFill(t *testing.T) {
	t.Run("clears first when asked", func(t *testing.T) {
		input := browsertest.NewLocator("email")
		input.Value = "old"

		err := newElementActions(browsertest.NewPage()).Fill(input, "new@example.com", FillOptions{Clear: true})

		require.NoError(t, err)
		assert.Equal(t, []string{"clear", "fill"}, input.Calls)
		assert.Equal(t, "new@example.com", input.Value)
	})

	t.Run("fills without clearing by default", func(t *testing.T) {
		input := browsertest.NewLocator("email")

		require.NoError(t, newElementActions(browsertest.NewPage()).Fill(input, "a"))

		assert.Equal(t, []string{"fill"}, input.Calls)
	})

	t.Run("wraps failures", func(t *testing.T) {
		input := browsertest.NewLocator("email")
		input.Errs = map[string]error{"fill": errors.New("readonly")}

		err := newElementActions(browsertest.NewPage()).Fill(input, "a")

		var actionErr *ActionError
		require.ErrorAs(t, err, &actionErr)
		assert.Equal(t, "fill", actionErr.Op)
	})
}

func TestType_FocusesThenTypesWithDelay(t *testing.T) {
	input := browsertest.NewLocator("name")
	ea := newElementActions(browsertest.NewPage())

	require.NoError(t, ea.Type(input, "Ada"))
	assert.Equal(t, []string{"click", "type"}, input.Calls)
	assert.Equal(t, []string{"Ada"}, input.Typed)
	assert.Equal(t, 100.0, input.TypeDelay)

	require.NoError(t, ea.Type(input, "Lovelace", 250*time.Millisecond))
	assert.Equal(t, 250.0, input.TypeDelay)
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		value entities.SelectValue
		check func(t *testing.T, got playwright.SelectOptionValues)
	}{
		{
			name:  "single value matches value or label",
			value: entities.ByValue("vn"),
			check: func(t *testing.T, got playwright.SelectOptionValues) {
				require.NotNil(t, got.ValuesOrLabels)
				assert.Equal(t, []string{"vn"}, *got.ValuesOrLabels)
			},
		},
		{
			name:  "multiple values",
			value: entities.ByValues("red", "blue"),
			check: func(t *testing.T, got playwright.SelectOptionValues) {
				require.NotNil(t, got.ValuesOrLabels)
				assert.Equal(t, []string{"red", "blue"}, *got.ValuesOrLabels)
			},
		},
		{
			name:  "value wins over label and index",
			value: entities.ByOption(entities.SelectOption{Value: "v", Label: "L", Index: entities.OptionIndex(2)}),
			check: func(t *testing.T, got playwright.SelectOptionValues) {
				require.NotNil(t, got.Values)
				assert.Equal(t, []string{"v"}, *got.Values)
				assert.Nil(t, got.Labels)
				assert.Nil(t, got.Indexes)
			},
		},
		{
			name:  "label wins over index",
			value: entities.ByOption(entities.SelectOption{Label: "L", Index: entities.OptionIndex(2)}),
			check: func(t *testing.T, got playwright.SelectOptionValues) {
				require.NotNil(t, got.Labels)
				assert.Equal(t, []string{"L"}, *got.Labels)
				assert.Nil(t, got.Indexes)
			},
		},
		{
			name:  "index only when value and label are absent",
			value: entities.ByOption(entities.SelectOption{Index: entities.OptionIndex(2)}),
			check: func(t *testing.T, got playwright.SelectOptionValues) {
				require.NotNil(t, got.Indexes)
				assert.Equal(t, []int{2}, *got.Indexes)
				assert.Nil(t, got.Values)
				assert.Nil(t, got.Labels)
			},
		},
		{
			name:  "index zero is a real index",
			value: entities.ByOption(entities.SelectOption{Index: entities.OptionIndex(0)}),
			check: func(t *testing.T, got playwright.SelectOptionValues) {
				require.NotNil(t, got.Indexes)
				assert.Equal(t, []int{0}, *got.Indexes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dropdown := browsertest.NewLocator("country")

			require.NoError(t, newElementActions(browsertest.NewPage()).Select(dropdown, tt.value))

			require.Len(t, dropdown.Selected, 1)
			tt.check(t, dropdown.Selected[0])
		})
	}
}

func TestSelect_EmptyOptionIsRejected(t *testing.T) {
	dropdown := browsertest.NewLocator("country")

	err := newElementActions(browsertest.NewPage()).Select(dropdown, entities.ByOption(entities.SelectOption{}))

	assert.ErrorIs(t, err, ErrEmptySelectOption)
	assert.Empty(t, dropdown.Selected)
}

func TestCheckAndUncheck_AreIdempotent(t *testing.T) {
	ea := newElementActions(browsertest.NewPage())

	checked := browsertest.NewLocator("terms")
	checked.Checked = true
	require.NoError(t, ea.Check(checked))
	assert.Zero(t, checked.CallCount("check"))

	unchecked := browsertest.NewLocator("newsletter")
	require.NoError(t, ea.Uncheck(unchecked))
	assert.Zero(t, unchecked.CallCount("uncheck"))

	require.NoError(t, ea.Check(unchecked))
	assert.Equal(t, 1, unchecked.CallCount("check"))
	assert.True(t, unchecked.Checked)

	require.NoError(t, ea.Uncheck(checked))
	assert.Equal(t, 1, checked.CallCount("uncheck"))
	assert.False(t, checked.Checked)
}

func TestIsVisible_NeverFails(t *testing.T) {
	ea := newElementActions(browsertest.NewPage())

	missing := &browsertest.Locator{Name: "ghost"}
	assert.False(t, ea.IsVisible(missing))
	assert.Equal(t, []playwright.WaitForSelectorState{"visible"}, missing.Waits)

	broken := browsertest.NewLocator("broken")
	broken.WaitHooks = map[playwright.WaitForSelectorState]browsertest.WaitHook{
		"visible": func(float64) error { return errors.New("target closed") },
	}
	assert.False(t, ea.IsVisible(broken))

	assert.True(t, ea.IsVisible(browsertest.NewLocator("shown")))
}

func TestIsVisible_UsesShortTier(t *testing.T) {
	var limit float64
	l := browsertest.NewLocator("banner")
	l.WaitHooks = map[playwright.WaitForSelectorState]browsertest.WaitHook{
		"visible": func(timeout float64) error { limit = timeout; return nil },
	}

	newElementActions(browsertest.NewPage()).IsVisible(l)

	assert.Equal(t, 5000.0, limit)
}

func TestGetters(t *testing.T) {
	ea := newElementActions(browsertest.NewPage())
	l := browsertest.NewLocator("field")
	l.Text = "  Hello "
	l.Inner = "Hello"
	l.Value = "typed"
	l.Attrs = map[string]string{"aria-invalid": "true"}

	text, err := ea.GetText(l)
	require.NoError(t, err)
	assert.Equal(t, "  Hello ", text)

	inner, err := ea.GetInnerText(l)
	require.NoError(t, err)
	assert.Equal(t, "Hello", inner)

	value, err := ea.GetValue(l)
	require.NoError(t, err)
	assert.Equal(t, "typed", value)

	attr, err := ea.GetAttribute(l, "aria-invalid")
	require.NoError(t, err)
	assert.Equal(t, "true", attr)

	missing, err := ea.GetAttribute(l, "title")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestDelegations(t *testing.T) {
	page := browsertest.NewPage()
	ea := newElementActions(page)
	src := browsertest.NewLocator("card")
	dst := browsertest.NewLocator("column")
	file := browsertest.NewLocator("avatar")

	require.NoError(t, ea.Hover(src))
	require.NoError(t, ea.Focus(src))
	require.NoError(t, ea.ScrollIntoView(src))
	require.NoError(t, ea.DoubleClick(src))
	require.NoError(t, ea.DragAndDrop(src, dst))
	require.NoError(t, ea.UploadFile(file, "a.png", "b.png"))
	require.NoError(t, ea.Press("Enter"))

	assert.Equal(t, []string{"hover", "focus", "scroll", "dblclick", "drag"}, src.Calls)
	assert.Same(t, dst, src.DroppedOn)
	assert.Equal(t, []string{"a.png", "b.png"}, file.Files)
	assert.Equal(t, []string{"Enter"}, page.Keys)

	assert.Error(t, ea.UploadFile(file))
}

func TestWaitForVisibleAndHidden(t *testing.T) {
	ea := newElementActions(browsertest.NewPage())
	shown := browsertest.NewLocator("toast")

	require.NoError(t, ea.WaitForVisible(shown))
	err := ea.WaitForHidden(shown, time.Second)

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, "wait for hidden", actionErr.Op)
	assert.True(t, actionErr.Timeout())
}

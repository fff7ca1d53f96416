package ui_test

import (
	"testing"

	"github.com/iksnae/support-widget/internal/ui"
	"github.com/stretchr/testify/require"
)

func TestBuild_ConfigScenario(t *testing.T) {
	root := ui.Build(ui.Theme{
		PrimaryColor: "#123456",
		Title:        "Help",
		Welcome:      "Hi",
		Position:     "top-left",
	})

	require.Equal(t, ui.RootID, root.ID)
	require.True(t, root.Shadow)

	wrapper := root.Find(ui.WrapperID)
	require.NotNil(t, wrapper)
	require.True(t, wrapper.HasClass("pos-top-left"))

	header := root.Find(ui.HeaderID)
	require.NotNil(t, header)
	require.Equal(t, "#123456", header.Style["background-color"])

	msgs := ui.MessagesOf(root)
	require.Equal(t, []ui.Message{{Text: "Hi", Sender: ui.SenderBot}}, msgs)

	require.NotNil(t, root.Find(ui.InputID))
	require.NotNil(t, root.Find(ui.SendID))
	require.True(t, root.Find(ui.WindowID).HasClass(ui.ClassHidden))
}

func TestBuild_Offline(t *testing.T) {
	root := ui.Build(ui.Theme{
		PrimaryColor:       "#0ea5e9",
		Title:              "Support",
		Welcome:            "unavailable",
		BackgroundColor:    "#ffffff",
		SuggestedQuestions: []string{"pricing?"},
		Offline:            true,
	})

	require.Nil(t, root.Find(ui.InputID))
	require.Nil(t, root.Find(ui.SendID))
	require.Nil(t, root.Find(ui.SuggestionsID))

	var status string
	root.Walk(func(n *ui.Node) bool {
		if n.HasClass("status") {
			status = n.Text
			return false
		}
		return true
	})
	require.Equal(t, ui.StatusOffline, status)
	require.Empty(t, root.Find(ui.WindowID).Style["background-color"])
	require.True(t, root.Find(ui.WrapperID).HasClass("pos-bottom-right"))
}

func TestBuild_OptionalParts(t *testing.T) {
	root := ui.Build(ui.Theme{
		PrimaryColor:       "#000",
		BackgroundColor:    "#fafafa",
		LogoURL:            "https://cdn.example.com/logo.png",
		BotName:            "Ava",
		SuggestedQuestions: []string{"How do I get started?", "  ", "Pricing?"},
		StylesheetURL:      "http://localhost:8001/static/widget.css",
	})

	require.Equal(t, "#fafafa", root.Find(ui.WindowID).Style["background-color"])
	require.Len(t, root.Find(ui.SuggestionsID).Children, 2)
	require.Equal(t, "stylesheet", root.Children[0].Attrs["rel"])
	require.Equal(t, "http://localhost:8001/static/widget.css", root.Children[0].Attrs["href"])

	var img *ui.Node
	root.Walk(func(n *ui.Node) bool {
		if n.Tag == "img" {
			img = n
			return false
		}
		return true
	})
	require.NotNil(t, img)
	require.Equal(t, "Ava", img.Attrs["alt"])
}

func TestPositionClass(t *testing.T) {
	require.Equal(t, "pos-bottom-right", ui.PositionClass(""))
	require.Equal(t, "pos-top-right", ui.PositionClass(" top-right "))
}

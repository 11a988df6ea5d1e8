// Package seed provides starter content for fresh installations.
package seed

import (
	"guildbook/internal/middleware"
	"guildbook/internal/models"

	"gorm.io/gorm"
)

var starterGuides = []models.Guide{
	{
		Title:    "Welcome to the Guild Knowledge Base",
		Category: "general",
		Author:   "gamemaster",
		Content: "# Welcome\n\nThis is the shared knowledge base for the guild.\n\n" +
			"## How it works\n\n- Write guides in plain markup\n- Endorse guides you find useful\n- Leave comments with corrections or additions\n\n" +
			"Formatting supports **bold**, *italic*, `inline code`, and [links](https://example.com).\n",
	},
	{
		Title:    "Raid Preparation Checklist",
		Category: "raiding",
		Author:   "gamemaster",
		Content: "## Before the raid\n\n- Repair your gear\n- Stock consumables\n- Read the encounter notes\n\n" +
			"## Useful macros\n\n```\n/target boss\n/cast Taunt\n```\n\nBring questions to the officers channel.\n",
	},
	{
		Title:    "Markup Reference",
		Category: "general",
		Author:   "gamemaster",
		Content: "# Formatting reference\n\nHeadings use `#`, `##`, or `###`.\n\n" +
			"- Bullet lists start with a dash\n- Fenced blocks preserve text exactly\n\n" +
			"Only **http** and **https** links are rendered as anchors.\n",
	},
}

// GuidesIfEmpty inserts the starter guides when the store holds no guides at
// all. Existing content is never touched.
func GuidesIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Guide{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	guides := make([]models.Guide, len(starterGuides))
	copy(guides, starterGuides)
	if err := db.Create(&guides).Error; err != nil {
		return err
	}
	middleware.Logger.Info("Seeded starter guides", "count", len(starterGuides))
	return nil
}

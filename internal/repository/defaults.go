// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package repository

import (
	"time"

	"github.com/olegiv/newsroom/internal/model"
)

// Store keys of the persisted collections.
const (
	KeySystemConfig    = "tl_system_config"
	KeyAccessLogs      = "tl_access_logs"
	KeyPages           = "tl_pages"
	KeyArticles        = "tl_articles"
	KeyReports         = "tl_reports"
	KeyMessages        = "tl_messages"
	KeyNotifications   = "tl_notifications"
	KeyComments        = "tl_comments"
	KeyPoll            = "tl_active_poll"
	KeyEvents          = "tl_events"
	KeySubscribers     = "tl_subscribers"
	KeyUsers           = "tl_users"
	KeyReactionsLedger = "tl_reactions_ledger"
)

// DefaultSystemConfig is the configuration used on first boot.
func DefaultSystemConfig() model.SystemConfig {
	return model.SystemConfig{
		MaintenanceMode:  false,
		AllowGuestSignup: true,
		Theme: model.ThemeConfig{
			PublicationName:    "THE LIGHT",
			PublicationSubtext: "Publication",
			LogoURL:            "https://i.imgur.com/WhsJ3hf.jpeg",
			PrimaryColor:       "#FFEB3B",
			AccentColor:        "#00BCD4",
		},
		BreakingNews: &model.BreakingNews{
			Enabled:   true,
			Text:      "CLASSES SUSPENDED: Due to severe weather conditions, all classes are suspended for tomorrow, Oct 25.",
			Link:      "/category/news",
			BgColor:   "#DC2626",
			TextColor: "#FFFFFF",
			Speed:     model.TickerNormal,
		},
	}
}

func categoryPage(id, title, slug, description string, system bool, order int) model.PageConfig {
	return model.PageConfig{
		ID: id, Title: title, Slug: slug, Type: model.PageTypeCategory, Description: description,
		IsSystem: system, IsVisible: true, AccessLevel: model.AccessPublic, OrderScore: order,
	}
}

func staticPage(id, title, slug, description string, order int) model.PageConfig {
	return model.PageConfig{
		ID: id, Title: title, Slug: slug, Type: model.PageTypeStatic, Description: description,
		IsSystem: true, IsVisible: true, AccessLevel: model.AccessPublic, OrderScore: order,
	}
}

// DefaultPages is the navigation seeded on first boot.
func DefaultPages() []model.PageConfig {
	return []model.PageConfig{
		categoryPage("1", "Editorial", "editorial", "Opinions and official stances.", true, 1),
		categoryPage("2", "News", "news", "Latest happenings around campus.", true, 2),
		categoryPage("3", "Features", "features", "Deep dives and stories.", true, 3),
		categoryPage("4", "Sports", "sports", "Athletics updates.", true, 4),
		categoryPage("5", "Sci-Tech", "sci-tech", "Science and Technology.", false, 5),
		categoryPage("6", "Literary", "literary", "Poems and Stories.", false, 6),
		staticPage("7", "Gallery", "gallery", "Photo collections.", 7),
		staticPage("8", "Videos", "videos", "Video library.", 8),
		staticPage("9", "Events", "events", "School calendar.", 9),
		staticPage("10", "About", "about", "About the publication.", 10),
		staticPage("11", "Contact", "contact", "Contact us.", 11),
	}
}

// DefaultArticles is the sample content seeded on first boot, dated relative to now.
func DefaultArticles(now time.Time) []model.Article {
	return []model.Article{
		{
			ID:           "101",
			Title:        "The Light Shines Brighter: Annual Journalism Press Conference",
			Slug:         "light-shines-brighter",
			Excerpt:      "Our team took home 5 gold medals in this years regional press conference.",
			Content:      "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\n\nDuis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur.",
			AuthorID:     "4",
			AuthorName:   "Jimmy Pen",
			CategorySlug: "news",
			ImageURL:     "https://picsum.photos/800/600?random=1",
			PublishedAt:  now,
			Status:       model.ArticleStatusPublished,
			Views:        120,
			Reactions:    model.ArticleReactions{Like: 15, Love: 5, Insightful: 2},
			IsFeatured:   true,
		},
		{
			ID:           "102",
			Title:        "Why We Need Longer Breaks",
			Slug:         "why-we-need-longer-breaks",
			Excerpt:      "An analysis on student productivity and rest periods.",
			Content:      "The students have spoken, and the data shows a clear correlation between rest and performance. This is exclusive content that goes deep into the psychology of rest.",
			AuthorID:     "2",
			AuthorName:   "Jane EIC",
			CategorySlug: "editorial",
			ImageURL:     "https://picsum.photos/800/600?random=2",
			PublishedAt:  now.Add(-24 * time.Hour),
			Status:       model.ArticleStatusPublished,
			Views:        85,
			Reactions:    model.ArticleReactions{Like: 10, Love: 20, Insightful: 45, Sad: 1},
			IsMemberOnly: true,
		},
		{
			ID:           "103",
			Title:        "Varsity Team Qualifies for Finals",
			Slug:         "varsity-finals",
			Excerpt:      "The basketball team secured a thriller victory yesterday.",
			Content:      "Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum.\n\nWatch the highlights below!",
			AuthorID:     "4",
			AuthorName:   "Jimmy Pen",
			CategorySlug: "sports",
			ImageURL:     "https://picsum.photos/800/600?random=3",
			VideoURL:     "https://www.youtube.com/embed/dQw4w9WgXcQ",
			PublishedAt:  now.Add(-48 * time.Hour),
			Status:       model.ArticleStatusPublished,
			Views:        200,
			Reactions:    model.ArticleReactions{Like: 50, Love: 10, Insightful: 2},
		},
		{
			ID:           "104",
			Title:        "New Science Lab Equipment Arrives",
			Slug:         "new-science-lab",
			Excerpt:      "The school has invested in state-of-the-art microscopes and chemistry sets.",
			Content:      "The science department is thrilled to announce the arrival of new equipment. This upgrade will allow students to perform more advanced experiments.",
			AuthorID:     "4",
			AuthorName:   "Jimmy Pen",
			CategorySlug: "sci-tech",
			ImageURL:     "https://picsum.photos/800/600?random=4",
			PublishedAt:  now.Add(-200000 * time.Second),
			Status:       model.ArticleStatusPublished,
			Views:        56,
			Reactions:    model.ArticleReactions{Like: 5, Love: 1, Insightful: 12},
		},
		{
			ID:           "201",
			Title:        "Draft: Canteen Prices Rising",
			Slug:         "draft-canteen-prices",
			Excerpt:      "Students are complaining about the recent price hike.",
			Content:      "Prices for meals have gone up by 20%. We investigate why.",
			AuthorID:     "4",
			AuthorName:   "Jimmy Pen",
			CategorySlug: "news",
			ImageURL:     "https://picsum.photos/800/600?random=50",
			PublishedAt:  now,
			Status:       model.ArticleStatusDraft,
		},
		{
			ID:           "202",
			Title:        "Pending: Interview with the Principal",
			Slug:         "pending-principal-interview",
			Excerpt:      "We sat down with Dr. Smith to discuss the new policies.",
			Content:      "Dr. Smith emphasized the importance of discipline and academic excellence.",
			AuthorID:     "4",
			AuthorName:   "Jimmy Pen",
			CategorySlug: "features",
			ImageURL:     "https://picsum.photos/800/600?random=51",
			PublishedAt:  now,
			Status:       model.ArticleStatusPending,
			IsMemberOnly: true,
		},
	}
}

// DefaultEvents is the school calendar seeded on first boot.
func DefaultEvents() []model.SchoolEvent {
	return []model.SchoolEvent{
		{
			ID: "1", Title: "Foundation Week: Day 1", Date: "2024-03-15", Location: "University Grounds",
			Category: model.EventCategoryGeneral, Status: model.EventStatusScheduled,
			Description: "The start of our university week celebration.",
			ImageURL:    "https://picsum.photos/600/400?random=90",
			SubEvents: []model.SubEvent{
				{ID: "s1", Time: "07:30 AM", Title: "Grand Parade", Location: "Oval"},
				{ID: "s2", Time: "09:00 AM", Title: "Opening Ceremony", Location: "Gymnasium"},
				{ID: "s3", Time: "01:00 PM", Title: "Food Bazaar Opening", Location: "Quadrangle"},
			},
		},
		{
			ID: "2", Title: "Science Fair Judging", Date: "2024-03-15", Location: "Science Lab",
			Category: model.EventCategoryAcademic, Status: model.EventStatusScheduled,
			Description: "Showcase of student innovation.",
		},
		{
			ID: "3", Title: "Varsity Finals vs Rivals", Date: "2024-03-20", Location: "City Arena",
			Category: model.EventCategorySports, Status: model.EventStatusScheduled,
			Description: "Championship game.", ImageURL: "https://picsum.photos/600/400?random=91",
		},
		{
			ID: "4", Title: "Spring Concert", Date: "2024-04-05", Location: "Auditorium",
			Category: model.EventCategoryArts, Status: model.EventStatusCancelled,
			Description: "Featuring the school choir and band.", ImageURL: "https://picsum.photos/600/400?random=92",
		},
	}
}

// DefaultPoll is the reader poll seeded on first boot.
func DefaultPoll() model.Poll {
	return model.Poll{
		ID:         "poll-1",
		Question:   "What is the most anticipated event this semester?",
		TotalVotes: 142,
		Options: []model.PollOption{
			{ID: "opt-1", Text: "Intramurals", Votes: 85},
			{ID: "opt-2", Text: "Science Fair", Votes: 20},
			{ID: "opt-3", Text: "School Concert", Votes: 37},
		},
	}
}

// DefaultUsers are the accounts known to the mock auth directory.
func DefaultUsers() []model.User {
	return []model.User{
		{
			ID: "1", Name: "Auditor Admin", Username: "auditor_main", Email: "auditor@light.edu", SchoolID: "2020-0001",
			Role: model.RoleAuditor, Avatar: "https://i.pravatar.cc/150?u=auditor",
			Bio:            "Overseeing the quality and integrity of The Light Publication. I ensure every story meets our high standards.",
			Specialization: "System Administration",
			SocialLinks:    &model.SocialLinks{Twitter: "@auditor", LinkedIn: "in/auditor"},
		},
		{
			ID: "2", Name: "Jane EIC", Username: "jane_writes", Email: "eic@light.edu", SchoolID: "2021-0055",
			Role: model.RoleEIC, Avatar: "https://i.pravatar.cc/150?u=eic",
			Bio:            "Editor-in-Chief. Passionate about student journalism and bringing the truth to light.",
			Specialization: "Editorial Writing",
		},
		{
			ID: "3", Name: "John Head", Username: "sports_john", Email: "head@light.edu", SchoolID: "2022-1024",
			Role: model.RoleHead, Avatar: "https://i.pravatar.cc/150?u=head",
			Bio:            "Head of Sports Section. I live for the game and the stories behind the scores.",
			Specialization: "Sports Journalism",
		},
		{
			ID: "4", Name: "Jimmy Pen", Username: "jimmy_p", Email: "writer@light.edu", SchoolID: "2023-0512",
			Role: model.RoleJournalist, Avatar: "https://i.pravatar.cc/150?u=writer",
			Bio:            "Aspiring writer and coffee enthusiast. Always chasing the next big scoop on campus.",
			Specialization: "Features",
		},
	}
}

// PrintEditions is the read-only archive of print issues.
func PrintEditions() []model.PrintEdition {
	return []model.PrintEdition{
		{
			ID: "1", Title: "The Light: Volume 24", CoverURL: "https://picsum.photos/400/600?random=10",
			PDFURL:      "https://www.w3.org/WAI/ER/tests/xhtml/testfiles/resources/pdf/dummy.pdf",
			PublishDate: "2023-12-01", Volume: "Vol. 24 Issue 2",
		},
	}
}

// TeamMembers is the read-only staff directory.
func TeamMembers() []model.TeamMember {
	return []model.TeamMember{
		{ID: "1", Name: "Dr. Alan Grant", Role: "Faculty Adviser", Bio: "Guiding students in ethical journalism.", AvatarURL: "https://i.pravatar.cc/150?u=grant", Email: "grant@light.edu", SocialLinks: &model.SocialLinks{Twitter: "@dgrant"}},
		{ID: "2", Name: "Jane EIC", Role: "Editor-in-Chief", Bio: "Senior student passionate about truth and storytelling.", AvatarURL: "https://i.pravatar.cc/150?u=eic", Email: "eic@light.edu"},
		{ID: "3", Name: "John Head", Role: "Sports Editor", Bio: "Capturing the thrill of the game.", AvatarURL: "https://i.pravatar.cc/150?u=head", Email: "head@light.edu"},
		{ID: "4", Name: "Jimmy Pen", Role: "Senior Journalist", Bio: "Aspiring writer and coffee enthusiast.", AvatarURL: "https://i.pravatar.cc/150?u=writer", Email: "writer@light.edu"},
		{ID: "5", Name: "Alice Lens", Role: "Head Photographer", Bio: "Visualizing the narrative.", AvatarURL: "https://i.pravatar.cc/150?u=lens"},
	}
}

// Albums is the read-only photo gallery.
func Albums() []model.GalleryAlbum {
	images := make([]string, 6)
	for i := range images {
		images[i] = "https://picsum.photos/800/600?random=21"
	}
	return []model.GalleryAlbum{
		{ID: "1", Title: "Intramurals 2024", CoverURL: "https://picsum.photos/800/600?random=20", ImageCount: 45, Images: images},
	}
}

// Videos is the read-only video library.
func Videos() []model.Video {
	return []model.Video{
		{
			ID: "1", Title: "Campus Tour 2024", Description: "A walk through our newly renovated campus.",
			ThumbnailURL: "https://picsum.photos/800/450?random=30", VideoURL: "https://www.youtube.com/embed/dQw4w9WgXcQ",
			Category: "Features", PublishedAt: "2023-10-15",
		},
	}
}

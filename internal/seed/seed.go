// Package seed prepares the data a fresh BuildDost instance needs.
package seed

import (
	"fmt"
	"log"

	"github.com/builddost/builddost-api/internal/constants"
	"github.com/builddost/builddost-api/internal/models"
	"github.com/builddost/builddost-api/internal/services"
)

// DemoUser ensures the demo owner exists and returns it.
func DemoUser(userService *services.UserService) (*models.User, error) {
	user, err := userService.EnsureUser(constants.DemoUserEmail, constants.DemoUserDisplayName)
	if err != nil {
		return nil, fmt.Errorf("seed demo user: %w", err)
	}
	return user, nil
}

// Templates adds one starter template per built-in category. It does nothing
// when any public template already exists. It reports how many were created.
func Templates(templateService *services.TemplateService) (int, error) {
	existing, err := templateService.ListTemplates("")
	if err != nil {
		return 0, fmt.Errorf("seed templates: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, category := range models.TemplateCategories {
		st := starters[category]
		if _, err := templateService.CreateTemplate(services.CreateTemplateInput{
			Name:        st.name,
			Description: st.description,
			Category:    category,
			Components: []models.ComponentRef{
				{ID: category + "-hero", Name: "Hero", Type: "section"},
				{ID: category + "-cta", Name: "Button", Type: "ui"},
			},
			Config:     map[string]any{"theme": "light", "accent": st.accent},
			SourceFile: "App.tsx",
			SourceCode: starterSource(st),
		}); err != nil {
			return i, fmt.Errorf("seed template %q: %w", category, err)
		}
	}

	log.Printf("Seeded %d starter templates", len(models.TemplateCategories))
	return len(models.TemplateCategories), nil
}

type starter struct {
	name        string
	description string
	headline    string
	icon        string
	accent      string
}

var starters = map[string]starter{
	models.TemplateCategoryLanding: {
		name: "Launch Landing Page", description: "Hero, feature grid and call to action for a product launch.",
		headline: "Ship your idea today", icon: "Rocket", accent: "indigo",
	},
	models.TemplateCategoryPortfolio: {
		name: "Minimal Portfolio", description: "Project showcase with an about section.",
		headline: "Selected work", icon: "Briefcase", accent: "slate",
	},
	models.TemplateCategoryEcommerce: {
		name: "Storefront", description: "Product grid with a cart summary.",
		headline: "New arrivals", icon: "ShoppingCart", accent: "emerald",
	},
	models.TemplateCategoryBlog: {
		name: "Writer's Blog", description: "Article list with tags and a reading view.",
		headline: "Latest posts", icon: "BookOpen", accent: "amber",
	},
	models.TemplateCategoryDashboard: {
		name: "Admin Dashboard", description: "Stat cards, activity feed and a sidebar.",
		headline: "Overview", icon: "LayoutDashboard", accent: "sky",
	},
	models.TemplateCategoryTodo: {
		name: "Task Board", description: "Todo list with filters and progress.",
		headline: "Today's tasks", icon: "CheckSquare", accent: "rose",
	},
}

func starterSource(s starter) string {
	return fmt.Sprintf(`import { useState } from "react";
import { Button } from "@/components/ui/button";
import { %[1]s, ArrowRight } from "lucide-react";

export default function App() {
  const [clicks, setClicks] = useState(0);

  return (
    <main className="min-h-screen bg-white text-gray-900">
      <section className="mx-auto max-w-4xl px-6 py-24 text-center">
        <%[1]s className="mx-auto mb-6 h-12 w-12 text-%[3]s-600" />
        <h1 className="text-4xl font-bold">%[2]s</h1>
        <p className="mt-4 text-gray-600">%[4]s</p>
        <Button className="mt-8" onClick={() => setClicks(clicks + 1)}>
          Get started <ArrowRight className="ml-2 h-4 w-4" />
        </Button>
        {clicks > 0 && <p className="mt-4 text-sm">Clicked {clicks} times</p>}
      </section>
    </main>
  );
}
`, s.icon, s.headline, s.accent, s.description)
}

// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package database

import (
	"context"
	"fmt"

	"github.com/RaihanaAm/Bib-Readers/internal/logging"
	"github.com/RaihanaAm/Bib-Readers/internal/models"
)

// SeedCatalog seeds the database with a small demo catalog for local
// development and screenshots. Rows are upserted by (title, author), so
// calling this on every startup is safe and re-running never duplicates.
func (db *DB) SeedCatalog(ctx context.Context) error {
	logging.Info().Msg("Seeding database with demo catalog...")

	books := []models.Book{
		{
			Title:       "A Light in the Attic",
			Author:      "Shel Silverstein",
			Description: "A collection of humorous poems and drawings about sidewalks that end, homework machines, and children who refuse to take the garbage out.",
			Price:       51.77, Stock: 22, Rating: 3,
		},
		{
			Title:       "Tipping the Velvet",
			Author:      "Sarah Waters",
			Description: "A music hall performer in Victorian England follows a male impersonator to London and discovers the city's hidden theatrical underworld.",
			Price:       53.74, Stock: 20, Rating: 1,
		},
		{
			Title:       "Soumission",
			Author:      "Michel Houellebecq",
			Description: "A Sorbonne literature professor drifts through a near-future France transformed by a sweeping political upheaval.",
			Price:       50.10, Stock: 20, Rating: 1,
		},
		{
			Title:       "Sharp Objects",
			Author:      "Gillian Flynn",
			Description: "A reporter returns to her small hometown to cover the murders of two young girls and confronts her own family's darkness.",
			Price:       47.82, Stock: 20, Rating: 4,
		},
		{
			Title:       "Sapiens: A Brief History of Humankind",
			Author:      "Yuval Noah Harari",
			Description: "A sweeping account of how an unremarkable ape came to dominate the planet through cognitive, agricultural, and scientific revolutions.",
			Price:       54.23, Stock: 20, Rating: 5,
		},
		{
			Title:       "The Requiem Red",
			Author:      "Brynn Chapman",
			Description: "A patient in a Victorian asylum hears music no one else can and uncovers the sinister experiments carried out behind its walls.",
			Price:       22.65, Stock: 19, Rating: 1,
		},
		{
			Title:       "The Dirty Little Secrets of Getting Your Dream Job",
			Author:      "Don Raskin",
			Description: "An advertising executive shares blunt, practical advice for interviews, resumes, and standing out in a crowded hiring market.",
			Price:       33.34, Stock: 19, Rating: 4,
		},
		{
			Title:       "The Coming Woman",
			Author:      "Karen J. Hicks",
			Description: "A novel based on the life of Victoria Woodhull, the feminist who ran for president decades before women could vote.",
			Price:       17.93, Stock: 19, Rating: 3,
		},
		{
			Title:       "The Boys in the Boat",
			Author:      "Daniel James Brown",
			Description: "Nine working-class American rowers chase an Olympic gold medal in Berlin against the backdrop of the Great Depression.",
			Price:       22.60, Stock: 19, Rating: 4,
		},
		{
			Title:       "The Black Maria",
			Author:      "Aracelis Girmay",
			Description: "A collection of poems tracing migration, the sea, and the lives lost crossing it, named for the dark plains of the moon.",
			Price:       52.15, Stock: 19, Rating: 1,
		},
		{
			Title:       "Starving Hearts",
			Author:      "Zosia Wand",
			Description: "A triangular trade of love and obligation unsettles a family holiday on the Cumbrian coast.",
			Price:       13.99, Stock: 19, Rating: 2,
		},
		{
			Title:       "Shakespeare's Sonnets",
			Author:      "William Shakespeare",
			Description: "The complete sequence of 154 sonnets on love, beauty, time, and mortality, with the fair youth and the dark lady.",
			Price:       20.66, Stock: 19, Rating: 4,
		},
		{
			Title:       "Set Me Free",
			Author:      "Ann Clare LeZotte",
			Description: "A deaf girl in the nineteenth century fights to be educated and heard in a world that treats her as broken.",
			Price:       17.46, Stock: 19, Rating: 5,
		},
		{
			Title:       "Rip it Up and Start Again",
			Author:      "Simon Reynolds",
			Description: "A history of postpunk music from 1978 to 1984, when bands tore up rock convention and rebuilt it from scratch.",
			Price:       35.02, Stock: 19, Rating: 5,
		},
		{
			Title:       "Our Band Could Be Your Life",
			Author:      "Michael Azerrad",
			Description: "Scenes from the American indie underground 1981 to 1991, following thirteen bands who built a musical world outside the mainstream.",
			Price:       57.25, Stock: 19, Rating: 3,
		},
		{
			Title:       "Olio",
			Author:      "Tyehimba Jess",
			Description: "A collage of sonnets, songs, and narratives giving voice to African American performers of the minstrel era.",
			Price:       23.88, Stock: 19, Rating: 1,
		},
		{
			Title:       "Mesaerion: The Best Science Fiction Stories 1800-1849",
			Author:      "Andrew Barger",
			Description: "An anthology of early science fiction tales of automatons, airships, and voyages beyond the known world.",
			Price:       37.59, Stock: 19, Rating: 1,
		},
		{
			Title:       "Libertarianism for Beginners",
			Author:      "Todd Seavey",
			Description: "An illustrated primer on the political philosophy of individual liberty, limited government, and free markets.",
			Price:       51.33, Stock: 19, Rating: 2,
		},
		{
			Title:       "It's Only the Himalayas",
			Author:      "S. Bedford",
			Description: "A sarcastic travel memoir of backpacking through Asia and Africa with a best friend and very little sense.",
			Price:       45.17, Stock: 19, Rating: 2,
		},
		{
			Title:       "The Hobbit",
			Author:      "J.R.R. Tolkien",
			Description: "Bilbo Baggins leaves his comfortable hobbit hole to help a company of dwarves reclaim their mountain home from a dragon.",
			Price:       14.99, Stock: 25, Rating: 5,
		},
	}

	created := 0
	for i := range books {
		wasCreated, err := db.UpsertBook(ctx, &books[i])
		if err != nil {
			return fmt.Errorf("failed to seed book %q: %w", books[i].Title, err)
		}
		if wasCreated {
			created++
		}
	}

	logging.Info().
		Int("total", len(books)).
		Int("created", created).
		Msg("Demo catalog seeded")

	return nil
}

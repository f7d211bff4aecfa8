package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"planera/internal/database"
	"planera/internal/models"
)

func ListJournalTopics(ctx context.Context, uow *database.UnitOfWork, userID int64) ([]models.JournalTopic, error) {
	rows, err := uow.Query(ctx,
		`SELECT id, user_id, titulo, fecha_creacion FROM diario_temas WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list journal topics: %w", err)
	}
	defer rows.Close()
	topics := make([]models.JournalTopic, 0)
	for rows.Next() {
		var t models.JournalTopic
		var createdAt string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt = parseTime(createdAt)
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// ListJournalCategories scopes through the owning topic: categories have no
// user column of their own.
func ListJournalCategories(ctx context.Context, uow *database.UnitOfWork, userID int64) ([]models.JournalCategory, error) {
	rows, err := uow.Query(ctx,
		`SELECT c.id, c.tema_id, c.nombre FROM diario_categorias c
		 JOIN diario_temas t ON t.id = c.tema_id WHERE t.user_id = ? ORDER BY c.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list journal categories: %w", err)
	}
	defer rows.Close()
	categories := make([]models.JournalCategory, 0)
	for rows.Next() {
		var c models.JournalCategory
		if err := rows.Scan(&c.ID, &c.TopicID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func ListJournalSubcategories(ctx context.Context, uow *database.UnitOfWork, userID int64) ([]models.JournalSubcategory, error) {
	rows, err := uow.Query(ctx,
		`SELECT s.id, s.categoria_id, s.nombre FROM diario_subcategorias s
		 JOIN diario_categorias c ON c.id = s.categoria_id
		 JOIN diario_temas t ON t.id = c.tema_id WHERE t.user_id = ? ORDER BY s.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list journal subcategories: %w", err)
	}
	defer rows.Close()
	subs := make([]models.JournalSubcategory, 0)
	for rows.Next() {
		var s models.JournalSubcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func ListJournalNotes(ctx context.Context, uow *database.UnitOfWork, userID int64) ([]models.JournalNote, error) {
	rows, err := uow.Query(ctx,
		`SELECT id, user_id, contenido, fecha_creacion, tema_id, categoria_id, subcategoria_id
		 FROM diario_apartados WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list journal notes: %w", err)
	}
	defer rows.Close()
	notes := make([]models.JournalNote, 0)
	for rows.Next() {
		n, err := scanJournalNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func GetJournalTopic(ctx context.Context, uow *database.UnitOfWork, userID, id int64) (*models.JournalTopic, error) {
	var t models.JournalTopic
	var createdAt string
	err := uow.QueryRow(ctx,
		`SELECT id, user_id, titulo, fecha_creacion FROM diario_temas WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&t.ID, &t.UserID, &t.Title, &createdAt)
	if err != nil {
		return nil, notFound(err)
	}
	t.CreatedAt = parseTime(createdAt)
	return &t, nil
}

func CreateJournalTopic(ctx context.Context, uow *database.UnitOfWork, t *models.JournalTopic) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	id, err := uow.Insert(ctx,
		`INSERT INTO diario_temas (user_id, titulo, fecha_creacion) VALUES (?, ?, ?)`,
		t.UserID, t.Title, formatTime(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("create journal topic: %w", err)
	}
	t.ID = id
	return nil
}

func UpdateJournalTopic(ctx context.Context, uow *database.UnitOfWork, t *models.JournalTopic) error {
	_, err := uow.Exec(ctx,
		`UPDATE diario_temas SET titulo = ?, fecha_creacion = ? WHERE id = ? AND user_id = ?`,
		t.Title, formatTime(t.CreatedAt), t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("update journal topic: %w", err)
	}
	return nil
}

func DeleteJournalTopic(ctx context.Context, uow *database.UnitOfWork, userID, id int64) error {
	res, err := uow.Exec(ctx, `DELETE FROM diario_temas WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete journal topic: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func GetJournalCategory(ctx context.Context, uow *database.UnitOfWork, userID, id int64) (*models.JournalCategory, error) {
	var c models.JournalCategory
	err := uow.QueryRow(ctx,
		`SELECT c.id, c.tema_id, c.nombre FROM diario_categorias c
		 JOIN diario_temas t ON t.id = c.tema_id WHERE c.id = ? AND t.user_id = ?`, id, userID).
		Scan(&c.ID, &c.TopicID, &c.Name)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func CreateJournalCategory(ctx context.Context, uow *database.UnitOfWork, c *models.JournalCategory) error {
	id, err := uow.Insert(ctx,
		`INSERT INTO diario_categorias (tema_id, nombre) VALUES (?, ?)`, c.TopicID, c.Name)
	if err != nil {
		return fmt.Errorf("create journal category: %w", err)
	}
	c.ID = id
	return nil
}

func UpdateJournalCategory(ctx context.Context, uow *database.UnitOfWork, c *models.JournalCategory) error {
	_, err := uow.Exec(ctx,
		`UPDATE diario_categorias SET nombre = ?, tema_id = ? WHERE id = ?`, c.Name, c.TopicID, c.ID)
	if err != nil {
		return fmt.Errorf("update journal category: %w", err)
	}
	return nil
}

func DeleteJournalCategory(ctx context.Context, uow *database.UnitOfWork, userID, id int64) error {
	if _, err := GetJournalCategory(ctx, uow, userID, id); err != nil {
		return err
	}
	if _, err := uow.Exec(ctx, `DELETE FROM diario_categorias WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete journal category: %w", err)
	}
	return nil
}

func GetJournalSubcategory(ctx context.Context, uow *database.UnitOfWork, userID, id int64) (*models.JournalSubcategory, error) {
	var s models.JournalSubcategory
	err := uow.QueryRow(ctx,
		`SELECT s.id, s.categoria_id, s.nombre FROM diario_subcategorias s
		 JOIN diario_categorias c ON c.id = s.categoria_id
		 JOIN diario_temas t ON t.id = c.tema_id WHERE s.id = ? AND t.user_id = ?`, id, userID).
		Scan(&s.ID, &s.CategoryID, &s.Name)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func CreateJournalSubcategory(ctx context.Context, uow *database.UnitOfWork, s *models.JournalSubcategory) error {
	id, err := uow.Insert(ctx,
		`INSERT INTO diario_subcategorias (categoria_id, nombre) VALUES (?, ?)`, s.CategoryID, s.Name)
	if err != nil {
		return fmt.Errorf("create journal subcategory: %w", err)
	}
	s.ID = id
	return nil
}

func UpdateJournalSubcategory(ctx context.Context, uow *database.UnitOfWork, s *models.JournalSubcategory) error {
	_, err := uow.Exec(ctx,
		`UPDATE diario_subcategorias SET nombre = ?, categoria_id = ? WHERE id = ?`, s.Name, s.CategoryID, s.ID)
	if err != nil {
		return fmt.Errorf("update journal subcategory: %w", err)
	}
	return nil
}

func DeleteJournalSubcategory(ctx context.Context, uow *database.UnitOfWork, userID, id int64) error {
	if _, err := GetJournalSubcategory(ctx, uow, userID, id); err != nil {
		return err
	}
	if _, err := uow.Exec(ctx, `DELETE FROM diario_subcategorias WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete journal subcategory: %w", err)
	}
	return nil
}

func CreateJournalNote(ctx context.Context, uow *database.UnitOfWork, n *models.JournalNote) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	id, err := uow.Insert(ctx,
		`INSERT INTO diario_apartados (user_id, contenido, fecha_creacion, tema_id, categoria_id, subcategoria_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.UserID, n.Content, formatTime(n.CreatedAt), nullID(n.TopicID), nullID(n.CategoryID), nullID(n.SubcategoryID))
	if err != nil {
		return fmt.Errorf("create journal note: %w", err)
	}
	n.ID = id
	return nil
}

func UpdateJournalNote(ctx context.Context, uow *database.UnitOfWork, n *models.JournalNote) error {
	_, err := uow.Exec(ctx,
		`UPDATE diario_apartados SET contenido = ?, fecha_creacion = ?, tema_id = ?, categoria_id = ?, subcategoria_id = ?
		 WHERE id = ? AND user_id = ?`,
		n.Content, formatTime(n.CreatedAt), nullID(n.TopicID), nullID(n.CategoryID), nullID(n.SubcategoryID), n.ID, n.UserID)
	if err != nil {
		return fmt.Errorf("update journal note: %w", err)
	}
	return nil
}

func DeleteJournalNote(ctx context.Context, uow *database.UnitOfWork, userID, id int64) error {
	res, err := uow.Exec(ctx, `DELETE FROM diario_apartados WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete journal note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanJournalNote(row rowScanner) (*models.JournalNote, error) {
	var n models.JournalNote
	var createdAt string
	var topicID, categoryID, subcategoryID sql.NullInt64
	if err := row.Scan(&n.ID, &n.UserID, &n.Content, &createdAt, &topicID, &categoryID, &subcategoryID); err != nil {
		return nil, err
	}
	n.CreatedAt = parseTime(createdAt)
	n.TopicID = idPtr(topicID)
	n.CategoryID = idPtr(categoryID)
	n.SubcategoryID = idPtr(subcategoryID)
	return &n, nil
}

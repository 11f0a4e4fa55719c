// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

// Package schema centralizes physical table and column names so repositories
// never embed raw identifiers in SQL strings.
package schema

// DocumentTable represents a two-column JSONB collection table.
type DocumentTable struct {
	Table string
	ID    string
	Doc   string
}

// ContentBlog is the schema definition for content.blog
var ContentBlog = DocumentTable{Table: "content.blog", ID: "id", Doc: "doc"}

// ContentPost is the schema definition for content.post
var ContentPost = DocumentTable{Table: "content.post", ID: "id", Doc: "doc"}

// ContentComment is the schema definition for content.comment
var ContentComment = DocumentTable{Table: "content.comment", ID: "id", Doc: "doc"}

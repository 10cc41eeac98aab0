// Package config holds the project document model consumed by the code generator.
//
// A project is a tree of documents:
//
//	Project
//	└── Dbms            (dbmses)
//	    └── Schema      (schemas)
//	        └── Table   (tables)
//	            ├── Column            (columns)
//	            ├── PrimaryKeyColumn  (primaryKeyColumns)
//	            ├── Index             (indexes)
//	            │   └── IndexColumn   (indexColumns)
//	            └── ForeignKey        (foreignKeys)
//	                └── ForeignKeyColumn (foreignKeyColumns)
//
// Every node is a typed wrapper over a raw property record. Child collections
// are ordered lists of records stored under their collection key, which keeps
// the model open for plugins: properties unknown to this package are preserved
// and reachable through Document.Data.
//
// Nodes are never removed to exclude them from generation. Instead, the
// "enabled" property is set to false, and consumers filter on Document.Enabled.
//
// The tree is built once, usually with Load or LoadFile, and treated as
// read-only afterwards. Wrappers share the underlying records, so creating
// them is cheap and never copies data.
package config

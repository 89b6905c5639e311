// Command fixgen — generated fixture factory constructors
//
// fixgen turns a small *.fixtures.json spec into a Go file of factory
// constructors built on the fixture package:
//
//   - You write a tiny spec describing each fixture's shape: field names,
//     kinds (string/int/float/bool literals, sequence, uuid, now, nested
//     object), and optional named traits.
//   - You add a //go:generate ... directive next to the spec.
//   - fixgen generates one New<Name>Factory() constructor per fixture, with
//     traits pre-registered.
//
// The generated code depends only on the fixture package; there is no
// runtime reflection and nothing to initialize.
//
// Example spec:
//
//	{
//	  "package": "fixtures",
//	  "fixtures": [
//	    {
//	      "name": "User",
//	      "fields": [
//	        {"name": "id", "kind": "sequence", "prefix": "user-"},
//	        {"name": "username", "kind": "string", "value": "guest"},
//	        {"name": "preferences", "kind": "object", "fields": [
//	          {"name": "darkMode", "kind": "bool", "value": false}
//	        ]}
//	      ],
//	      "traits": [
//	        {"name": "admin", "fields": [
//	          {"name": "username", "kind": "string", "value": "root"}
//	        ]}
//	      ]
//	    }
//	  ]
//	}
//
// Usage:
//
//	fixgen -spec user.fixtures.json -out fixtures.gen.go
package main

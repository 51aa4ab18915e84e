// Package mcp implements a Model Context Protocol server over
// newline-delimited JSON-RPC on stdio.
//
// Two tools are exposed: search_knowledge runs a semantic similarity
// search over the knowledge base, store_knowledge writes a text entry
// under a knowledge domain. All logging goes to stderr; stdout carries
// only protocol messages.
package mcp

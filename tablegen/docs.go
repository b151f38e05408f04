/*
Package tablegen converts textual grammar definitions to compiled parser
tables (grammar.Grammar).

Definitions resemble EBNF. Self-definition of the language is:
*/
//  $space = /[ \r\n\t\f]+/; $comment = /#[^\n]*/;
//  $string = /(?:".*?")|(?:'.*?')/;
//  $name = /[a-zA-Z_][a-zA-Z_0-9-]*/;
//  $dir = /![a-z]+/;
//  $token-name = /\$[a-zA-Z_][a-zA-Z_0-9-]*/;
//  $regexp = /\/(?:[^\\\/]|\\.)+\//;
//  $op = /[(){}\[\]=|,;:]/;
//
//  !aside $space $comment;
//
//  # the first nonterminal definition is the root
//  langdef = {directive | token-definition}, definition, {definition};
//  directive = $dir, {$token-name}, ';';
//  token-definition = $token-name, '=', $regexp, ';';
//  definition = $name, '=', sequence, ';';
//  sequence = item, {',', item};
//  item = variant, {'|', variant}; # foo | bar, baz equals (foo|bar), baz
//  variant = [$name, ':'], ($name | $token-name | $string | group | optional | repeat);
//  group = '(', sequence, ')';
//  optional = '[', sequence, ']'; # matches 0 or 1 time
//  repeat = '{', sequence, '}';   # matches 0 or more times
/*
Token type definitions bind a terminal name to an RE2 regular expression
delimited with slashes; to use a slash inside the expression escape it
with a backslash. The only directive is !aside, which marks terminals as
insignificant (whitespace, comments): aside tokens may appear between any
two tokens and become extra leaves in parse trees. Aside terminals must
not be referenced in definitions.

String literals denote fixed-text terminals and are created implicitly.
A literal ending in a word character only matches on a word boundary, so
the keyword 'reg' does not steal the prefix of the identifier "register".
Literals take precedence over regexp terminals regardless of where they
first appear.

A "name:" prefix in a variant labels the child position with a field
name; the label can be queried on tree nodes via Node.ChildByField.

The generated tables are SLR(1). Grammars whose item sets produce
shift/reduce or reduce/reduce conflicts are rejected with a ConflictError
rather than resolved silently: the runtime only ever executes
deterministic tables.

The definition language has no counterpart for rule aliases
(grammar.Rule.Alias); rules are always emitted presenting their own
nonterminal. Tables produced by other tools may use aliases, and the
runtime honors them.
*/
package tablegen

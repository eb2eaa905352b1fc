// Package translate translates transcript segments into the target language.
// Results are cached per source text, language pair and provider so repeated
// runs over the same video do not hit the network again.
package translate

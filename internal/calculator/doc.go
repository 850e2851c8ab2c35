// Package calculator prices a silver purchase and converts the total out of INR.
//
// All arithmetic is done on exact decimals: for a weight w in grams and a
// price p per gram, the INR total is exactly w*p, and the converted total is
// exactly w*p*rate.
package calculator
